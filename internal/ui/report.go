package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bamsammich/homeward/internal/engine"
	"github.com/bamsammich/homeward/internal/plan"
	"github.com/bamsammich/homeward/internal/scan"
	"github.com/bamsammich/homeward/internal/stddir"
)

const (
	conflictListLimit = 10 // longer lists are abbreviated
	conflictListHead  = 5
)

type dirTally struct {
	copied, conflicts, failed int
	bytes                     int64
}

// FormatReport renders the end-of-run summary: totals, a per-directory
// breakdown, every failure and the conflicts left to resolve.
func FormatReport(res *engine.Result, elapsed time.Duration) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s in %s\n", Header("Restore finished"), FormatDuration(elapsed))
	fmt.Fprintf(&b, "  %-10s %s\n", "copied", FormatCount(int64(len(res.Copied))))
	fmt.Fprintf(&b, "  %-10s %s\n", "conflicts", FormatCount(int64(len(res.Conflicts))))
	fmt.Fprintf(&b, "  %-10s %s\n", "failed", FormatCount(int64(len(res.Failures))))
	fmt.Fprintf(&b, "  %-10s %s\n", "total", FormatBytes(res.BytesCopied))

	tallies := make(map[stddir.Dir]*dirTally)
	tally := func(d stddir.Dir) *dirTally {
		t, ok := tallies[d]
		if !ok {
			t = &dirTally{}
			tallies[d] = t
		}
		return t
	}
	for _, c := range res.Copied {
		t := tally(c.Dir)
		t.copied++
		t.bytes += c.Size
	}
	for _, c := range res.Conflicts {
		t := tally(c.Dir)
		t.conflicts++
		t.bytes += c.Size
	}
	for _, f := range res.Failures {
		tally(f.Dir).failed++
	}

	if len(tallies) > 0 {
		fmt.Fprintf(&b, "\n%s\n", Header("By folder"))
		for _, d := range stddir.All {
			t, ok := tallies[d]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %-10s %6s copied  %4d conflicts  %4d failed  %10s\n",
				d, FormatCount(int64(t.copied)), t.conflicts, t.failed, FormatBytes(t.bytes))
		}
	}

	if len(res.Failures) > 0 {
		failures := append([]engine.CopyFailure(nil), res.Failures...)
		sort.Slice(failures, func(i, j int) bool { return failures[i].Src < failures[j].Src })

		fmt.Fprintf(&b, "\n%s\n", Error(fmt.Sprintf("Errors (%d)", len(failures))))
		for _, f := range failures {
			fmt.Fprintf(&b, "  %s: %s → %s (%v)\n", f.Dir, f.Src, f.Dst, f.Err)
		}
	}

	if len(res.Conflicts) > 0 {
		conflicts := SortedConflicts(res.Conflicts)
		fmt.Fprintf(&b, "\n%s\n", Warn(fmt.Sprintf("Conflicts (%d)", len(conflicts))))
		writeAbbreviated(&b, len(conflicts), func(i int) string {
			c := conflicts[i]
			return fmt.Sprintf("%s  %s %s", c.RestorePath, Muted("kept beside"), filepath.Base(c.OriginalPath))
		})
	}

	return b.String()
}

// FormatDryRun previews a plan without touching the destination. Targets
// that already exist are listed with the restore name they would get; the
// check is advisory since the destination may change before a real run.
func FormatDryRun(p plan.Plan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s directories, %s files, %s would be restored\n",
		Header("Dry run"),
		FormatCount(int64(len(p.Dirs))), FormatCount(int64(len(p.Files))), FormatBytes(p.TotalBytes))

	counts := make(map[stddir.Dir]*dirTally)
	var occupied []plan.CopyOp
	for _, op := range p.Files {
		t, ok := counts[op.Dir]
		if !ok {
			t = &dirTally{}
			counts[op.Dir] = t
		}
		t.copied++
		t.bytes += op.Size
		if _, err := os.Lstat(op.Dst); err == nil {
			occupied = append(occupied, op)
		}
	}
	for _, d := range stddir.All {
		if t, ok := counts[d]; ok {
			fmt.Fprintf(&b, "  %-10s %6s files  %10s\n", d, FormatCount(int64(t.copied)), FormatBytes(t.bytes))
		}
	}

	if len(occupied) > 0 {
		sort.Slice(occupied, func(i, j int) bool { return occupied[i].Dst < occupied[j].Dst })
		fmt.Fprintf(&b, "\n%s\n", Warn(fmt.Sprintf("Would conflict (%d)", len(occupied))))
		writeAbbreviated(&b, len(occupied), func(i int) string {
			op := occupied[i]
			return fmt.Sprintf("%s → %s", op.Dst, filepath.Base(engine.RestoreCandidate(op.Dst, 1)))
		})
	}

	return b.String()
}

// FormatMappings lists what will be restored where.
func FormatMappings(mappings []scan.Mapping) string {
	var b strings.Builder
	for _, m := range mappings {
		fmt.Fprintf(&b, "  %-10s %s → %s\n", m.Dir, m.Src, m.Dst)
	}
	return b.String()
}

// SortedConflicts returns conflicts ordered by directory, then restore path.
func SortedConflicts(conflicts []engine.Conflict) []engine.Conflict {
	out := append([]engine.Conflict(nil), conflicts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dir != out[j].Dir {
			return out[i].Dir < out[j].Dir
		}
		return out[i].RestorePath < out[j].RestorePath
	})
	return out
}

func writeAbbreviated(b *strings.Builder, n int, line func(int) string) {
	shown := n
	if n > conflictListLimit {
		shown = conflictListHead
	}
	for i := range shown {
		fmt.Fprintf(b, "  %s\n", line(i))
	}
	if shown < n {
		fmt.Fprintf(b, "  ... and %d more\n", n-shown)
	}
}
