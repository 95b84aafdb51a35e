package scan_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/homeward/internal/scan"
	"github.com/bamsammich/homeward/internal/stddir"
)

func mkdirs(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Join(root, p), 0o755))
	}
}

func TestScan_FindsNestedDirectories(t *testing.T) {
	backup := t.TempDir()
	mkdirs(t, backup,
		"old-laptop/home/alice/Documents/Pictures",
		"old-laptop/home/alice/Music",
		"misc/stuff",
	)

	res := scan.Scan(backup, scan.HomeResolver("/home/bob"))
	require.Empty(t, res.Warnings)
	require.Len(t, res.Mappings, 2)

	byDir := scan.GroupByDir(res.Mappings)
	require.Len(t, byDir[stddir.Documents], 1)
	assert.Equal(t, filepath.Join(backup, "old-laptop/home/alice/Documents"), byDir[stddir.Documents][0].Src)
	assert.Equal(t, "/home/bob/Documents", byDir[stddir.Documents][0].Dst)

	// Pictures inside a matched Documents belongs to Documents.
	assert.Empty(t, byDir[stddir.Pictures])
	assert.Len(t, byDir[stddir.Music], 1)
}

func TestScan_RootNeverMatches(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "Documents")
	mkdirs(t, root, "Music")

	res := scan.Scan(root, scan.HomeResolver("/h"))
	require.Len(t, res.Mappings, 1)
	assert.Equal(t, stddir.Music, res.Mappings[0].Dir)
}

func TestScan_ReportsDuplicates(t *testing.T) {
	backup := t.TempDir()
	mkdirs(t, backup, "a/Documents", "b/c/Documents")

	res := scan.Scan(backup, scan.HomeResolver("/h"))
	groups := scan.GroupByDir(res.Mappings)
	assert.Len(t, groups[stddir.Documents], 2)
}

func TestScan_IgnoresFilesNamedLikeDirectories(t *testing.T) {
	backup := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(backup, "Desktop"), []byte("x"), 0o644))

	res := scan.Scan(backup, scan.HomeResolver("/h"))
	assert.Empty(t, res.Mappings)
}

func TestScan_UnreadableDirectoryIsWarning(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read everything")
	}
	backup := t.TempDir()
	mkdirs(t, backup, "locked/inner", "Videos")
	locked := filepath.Join(backup, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	res := scan.Scan(backup, scan.HomeResolver("/h"))
	require.Len(t, res.Mappings, 1)
	assert.Equal(t, stddir.Videos, res.Mappings[0].Dir)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Error(), "locked")
}

func TestScan_MissingRootIsWarning(t *testing.T) {
	res := scan.Scan(filepath.Join(t.TempDir(), "nope"), scan.HomeResolver("/h"))
	assert.Empty(t, res.Mappings)
	assert.Len(t, res.Warnings, 1)
}

func TestDirs_SortedByName(t *testing.T) {
	groups := scan.GroupByDir([]scan.Mapping{
		{Dir: stddir.Videos}, {Dir: stddir.Desktop}, {Dir: stddir.Music},
	})
	assert.Equal(t, []stddir.Dir{stddir.Desktop, stddir.Music, stddir.Videos}, scan.Dirs(groups))
}

func TestShallowest(t *testing.T) {
	got := scan.Shallowest([]scan.Mapping{
		{Src: "/b/x/y/Documents"},
		{Src: "/b/z/Documents"},
		{Src: "/b/a/Documents"},
	})
	assert.Equal(t, "/b/a/Documents", got.Src)
}

func TestUnique(t *testing.T) {
	mappings := []scan.Mapping{
		{Dir: stddir.Music, Src: "/b/Music"},
		{Dir: stddir.Documents, Src: "/b/1/Documents"},
		{Dir: stddir.Documents, Src: "/b/2/Documents"},
	}

	t.Run("pick chooses among duplicates", func(t *testing.T) {
		var asked []stddir.Dir
		got, err := scan.Unique(mappings, func(d stddir.Dir, c []scan.Mapping) (scan.Mapping, error) {
			asked = append(asked, d)
			return c[1], nil
		})
		require.NoError(t, err)
		assert.Equal(t, []stddir.Dir{stddir.Documents}, asked)
		require.Len(t, got, 2)
		assert.Equal(t, "/b/2/Documents", got[0].Src)
		assert.Equal(t, "/b/Music", got[1].Src)
	})

	t.Run("pick error aborts", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := scan.Unique(mappings, func(stddir.Dir, []scan.Mapping) (scan.Mapping, error) {
			return scan.Mapping{}, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestHomeResolver(t *testing.T) {
	r := scan.HomeResolver("/home/u")
	for _, d := range stddir.All {
		assert.Equal(t, filepath.Join("/home/u", d.String()), r(d))
	}
}

func TestXDGResolver_NeverBareHome(t *testing.T) {
	r := scan.XDGResolver()
	for _, d := range stddir.All {
		assert.NotEmpty(t, r(d))
	}
}
