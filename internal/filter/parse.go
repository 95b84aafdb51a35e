package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile appends the rules in path to the chain, in file order. Each
// non-blank line is "+ PATTERN" to include, "- PATTERN" or a bare PATTERN to
// exclude. Lines starting with # are comments.
func (c *Chain) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open filter file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		include, pattern, ok := parseRule(sc.Text())
		if !ok {
			continue
		}
		add := c.AddExclude
		if include {
			add = c.AddInclude
		}
		if err := add(pattern); err != nil {
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read filter file %s: %w", path, err)
	}
	return nil
}

func parseRule(line string) (include bool, pattern string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return false, "", false
	}
	if rest, found := strings.CutPrefix(line, "+ "); found {
		return true, strings.TrimSpace(rest), true
	}
	if rest, found := strings.CutPrefix(line, "- "); found {
		return false, strings.TrimSpace(rest), true
	}
	return false, line, true
}
