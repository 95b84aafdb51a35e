package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exclude.rules")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRules(t, `# skip junk left by desktop environments
+ keep.part
- *.part

- .Trash-1000/
Thumbs.db
`)

	c := NewChain()
	require.NoError(t, c.LoadFile(path))

	require.Len(t, c.rules, 4)
	assert.True(t, c.rules[0].Include)
	assert.False(t, c.rules[1].Include)
	assert.False(t, c.rules[2].Include)
	assert.False(t, c.rules[3].Include)

	assert.True(t, c.Match("keep.part", false))
	assert.False(t, c.Match("movie.part", false))
	assert.False(t, c.Match(".Trash-1000", true))
	assert.False(t, c.Match("albums/Thumbs.db", false))
	assert.True(t, c.Match("albums/cover.png", false))
}

func TestLoadFileEmpty(t *testing.T) {
	c := NewChain()
	require.NoError(t, c.LoadFile(writeRules(t, "# only comments\n\n")))
	assert.Empty(t, c.rules)
}

func TestLoadFileNotExists(t *testing.T) {
	c := NewChain()
	assert.Error(t, c.LoadFile(filepath.Join(t.TempDir(), "missing")))
}

func TestLoadFileBadPatternReportsLine(t *testing.T) {
	c := NewChain()
	err := c.LoadFile(writeRules(t, "- *.tmp\n- [broken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":2:")
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		line    string
		include bool
		pattern string
		ok      bool
	}{
		{"+ *.jpg", true, "*.jpg", true},
		{"-   cache/ ", false, "cache/", true},
		{"desktop.ini", false, "desktop.ini", true},
		{"  # note", false, "", false},
		{"   ", false, "", false},
		{"-dash-name", false, "-dash-name", true},
	}
	for _, tt := range tests {
		include, pattern, ok := parseRule(tt.line)
		assert.Equal(t, tt.include, include, tt.line)
		assert.Equal(t, tt.pattern, pattern, tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
	}
}
