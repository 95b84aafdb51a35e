package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/homeward/internal/engine"
	"github.com/bamsammich/homeward/internal/plan"
	"github.com/bamsammich/homeward/internal/scan"
	"github.com/bamsammich/homeward/internal/stddir"
)

func TestFormatReport(t *testing.T) {
	res := &engine.Result{
		Copied: []engine.CopiedFile{
			{Src: "/b/Documents/a.txt", Dst: "/h/Documents/a.txt", Size: 2048, Dir: stddir.Documents},
			{Src: "/b/Music/s.mp3", Dst: "/h/Music/s.mp3", Size: 1024, Dir: stddir.Music},
		},
		Conflicts: []engine.Conflict{
			{RestorePath: "/h/Documents/b.restore.txt", OriginalPath: "/h/Documents/b.txt", Size: 10, Dir: stddir.Documents},
		},
		Failures: []engine.CopyFailure{
			{Src: "/b/Videos/v.mp4", Dst: "/h/Videos/v.mp4", Dir: stddir.Videos, Err: errors.New("permission denied")},
		},
		BytesCopied: 3082,
	}

	out := FormatReport(res, 3*time.Second)

	assert.Contains(t, out, "Restore finished in 3s")
	assert.Contains(t, out, "total      3.0 KiB")
	assert.Contains(t, out, "Videos: /b/Videos/v.mp4 → /h/Videos/v.mp4 (permission denied)")
	assert.Contains(t, out, "/h/Documents/b.restore.txt")
	assert.Contains(t, out, "Conflicts (1)")

	// Breakdown is in name order.
	docs := strings.Index(out, "  Documents")
	music := strings.Index(out, "  Music")
	videos := strings.Index(out, "  Videos")
	require.NotEqual(t, -1, docs)
	assert.Less(t, docs, music)
	assert.Less(t, music, videos)
	assert.NotContains(t, out, "  Desktop")
}

func TestFormatReport_NothingToReport(t *testing.T) {
	out := FormatReport(&engine.Result{}, 0)
	assert.Contains(t, out, "copied     0")
	assert.NotContains(t, out, "By folder")
	assert.NotContains(t, out, "Errors")
	assert.NotContains(t, out, "Conflicts")
}

func conflicts(n int) []engine.Conflict {
	out := make([]engine.Conflict, n)
	for i := range out {
		out[i] = engine.Conflict{
			RestorePath:  fmt.Sprintf("/h/Pictures/p%02d.restore.jpg", i),
			OriginalPath: fmt.Sprintf("/h/Pictures/p%02d.jpg", i),
			Dir:          stddir.Pictures,
		}
	}
	return out
}

func TestFormatReport_AbbreviatesLongConflictLists(t *testing.T) {
	t.Run("ten are listed in full", func(t *testing.T) {
		out := FormatReport(&engine.Result{Conflicts: conflicts(10)}, time.Second)
		assert.Contains(t, out, "p09.restore.jpg")
		assert.NotContains(t, out, "more")
	})

	t.Run("eleven show five and a count", func(t *testing.T) {
		out := FormatReport(&engine.Result{Conflicts: conflicts(11)}, time.Second)
		assert.Contains(t, out, "p04.restore.jpg")
		assert.NotContains(t, out, "p05.restore.jpg")
		assert.Contains(t, out, "... and 6 more")
	})
}

func TestFormatDryRun(t *testing.T) {
	home := t.TempDir()
	existing := filepath.Join(home, "Documents", "report.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	p := plan.Plan{
		Dirs: []plan.DirOp{{Dst: filepath.Join(home, "Documents")}, {Dst: filepath.Join(home, "Music")}},
		Files: []plan.CopyOp{
			{Src: "/b/Documents/report.pdf", Dst: existing, Size: 100, Dir: stddir.Documents},
			{Src: "/b/Documents/new.txt", Dst: filepath.Join(home, "Documents", "new.txt"), Size: 50, Dir: stddir.Documents},
			{Src: "/b/Music/s.mp3", Dst: filepath.Join(home, "Music", "s.mp3"), Size: 2048, Dir: stddir.Music},
		},
		TotalBytes: 2198,
	}

	out := FormatDryRun(p)
	assert.Contains(t, out, "Dry run: 2 directories, 3 files, 2.1 KiB would be restored")
	assert.Contains(t, out, "Would conflict (1)")
	assert.Contains(t, out, existing+" → report.restore.pdf")
	assert.NotContains(t, out, "new.restore.txt")
	assert.Less(t, strings.Index(out, "Documents"), strings.Index(out, "Music"))
}

func TestFormatMappings(t *testing.T) {
	out := FormatMappings([]scan.Mapping{
		{Dir: stddir.Desktop, Src: "/b/x/Desktop", Dst: "/h/Desktop"},
	})
	assert.Contains(t, out, "Desktop")
	assert.Contains(t, out, "/b/x/Desktop → /h/Desktop")
}

func TestSortedConflicts(t *testing.T) {
	in := []engine.Conflict{
		{RestorePath: "/h/Videos/a", Dir: stddir.Videos},
		{RestorePath: "/h/Desktop/z", Dir: stddir.Desktop},
		{RestorePath: "/h/Desktop/b", Dir: stddir.Desktop},
	}
	got := SortedConflicts(in)
	assert.Equal(t, "/h/Desktop/b", got[0].RestorePath)
	assert.Equal(t, "/h/Desktop/z", got[1].RestorePath)
	assert.Equal(t, "/h/Videos/a", got[2].RestorePath)
	assert.Equal(t, "/h/Videos/a", in[0].RestorePath, "input untouched")
}
