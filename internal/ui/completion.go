package ui

import (
	"fmt"

	"github.com/bamsammich/homeward/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 1,204  conflicts 3  size 2.1 GiB  avg 641.0 MiB/s  time 3m 17s  errors 0
func CompletionSummary(snap stats.Snapshot) string {
	avgSpeed := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgSpeed = float64(snap.BytesCopied) / snap.Elapsed.Seconds()
	}

	icon := "✓"
	if snap.FilesFailed > 0 {
		icon = "✗"
	}

	return fmt.Sprintf("done %s  files %s  conflicts %s  size %s  avg %s  time %s  errors %d",
		icon,
		FormatCount(snap.FilesCopied),
		FormatCount(snap.FilesConflicted),
		FormatBytes(snap.BytesCopied),
		FormatRate(avgSpeed),
		FormatDuration(snap.Elapsed),
		snap.FilesFailed,
	)
}
