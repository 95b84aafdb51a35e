package filter

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// compiledPattern is a validated glob pattern that can match relative paths.
type compiledPattern struct {
	glob     string // doublestar pattern actually matched
	original string
	dirOnly  bool // pattern ends with /
}

// compilePattern turns an rsync-style pattern into a doublestar glob.
//
//   - a trailing / restricts the pattern to directories
//   - a leading /, or any / inside the pattern, anchors it to the root
//   - otherwise the pattern matches the basename at any depth
func compilePattern(pattern string) (*compiledPattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty filter pattern")
	}
	cp := &compiledPattern{original: pattern}

	if strings.HasSuffix(pattern, "/") {
		cp.dirOnly = true
		pattern = strings.TrimSuffix(pattern, "/")
	}

	switch {
	case strings.HasPrefix(pattern, "/"):
		pattern = strings.TrimPrefix(pattern, "/")
	case strings.Contains(pattern, "/"):
		// anchored as written
	default:
		pattern = "**/" + pattern
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", cp.original)
	}
	cp.glob = pattern
	return cp, nil
}

// match tests whether a relative path matches this pattern.
func (cp *compiledPattern) match(relPath string, isDir bool) bool {
	if cp.dirOnly && !isDir {
		return false
	}
	ok, err := doublestar.Match(cp.glob, relPath)
	return err == nil && ok
}

func (cp *compiledPattern) String() string {
	return cp.original
}
