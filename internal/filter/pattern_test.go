package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternStar(t *testing.T) {
	p, err := compilePattern("*.log")
	require.NoError(t, err)

	assert.True(t, p.match("app.log", false))
	assert.True(t, p.match("dir/app.log", false))
	assert.False(t, p.match("app.log.bak", false))
	assert.False(t, p.match("app.txt", false))
	assert.Equal(t, "*.log", p.String())
}

func TestPatternDoubleStar(t *testing.T) {
	p, err := compilePattern("**/*.go")
	require.NoError(t, err)

	assert.True(t, p.match("main.go", false))
	assert.True(t, p.match("cmd/homeward/main.go", false))
	assert.False(t, p.match("main.txt", false))
}

func TestPatternAnchored(t *testing.T) {
	p, err := compilePattern("/root.txt")
	require.NoError(t, err)

	assert.True(t, p.match("root.txt", false))
	assert.False(t, p.match("sub/root.txt", false))
}

func TestPatternDirOnly(t *testing.T) {
	p, err := compilePattern("node_modules/")
	require.NoError(t, err)

	assert.True(t, p.match("node_modules", true))
	assert.True(t, p.match("code/app/node_modules", true))
	assert.False(t, p.match("node_modules", false))
}

func TestPatternQuestion(t *testing.T) {
	p, err := compilePattern("file?.txt")
	require.NoError(t, err)

	assert.True(t, p.match("file1.txt", false))
	assert.True(t, p.match("fileA.txt", false))
	assert.False(t, p.match("file12.txt", false))
}

func TestPatternContainingSlash(t *testing.T) {
	p, err := compilePattern("sub/dir/*.txt")
	require.NoError(t, err)

	assert.True(t, p.match("sub/dir/file.txt", false))
	assert.False(t, p.match("other/sub/dir/file.txt", false))
}

func TestPatternBraces(t *testing.T) {
	p, err := compilePattern("*.{tmp,part}")
	require.NoError(t, err)

	assert.True(t, p.match("download.part", false))
	assert.True(t, p.match("a/b/scratch.tmp", false))
	assert.False(t, p.match("keep.txt", false))
}
