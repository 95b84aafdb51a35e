package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/bamsammich/homeward/internal/engine"
	"github.com/bamsammich/homeward/internal/resolve"
	"github.com/bamsammich/homeward/internal/stddir"
	"github.com/bamsammich/homeward/internal/ui"
)

// strategy is how the conflicts of a run are settled as a whole.
type strategy int

const (
	strategyAsk strategy = iota
	strategyAdoptAll
	strategyKeepAll
	strategyPerFolder
	strategyIndividually
	strategyLeave
)

func parseStrategy(s string) (strategy, error) {
	if s == "ask" {
		return strategyAsk, nil
	}
	d, err := resolve.ParseDisposition(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --on-conflict: %w", err)
	}
	switch d {
	case resolve.AdoptNew:
		return strategyAdoptAll, nil
	case resolve.KeepOriginal:
		return strategyKeepAll, nil
	default:
		return strategyLeave, nil
	}
}

// handleConflicts settles the conflicts of a run and returns how many could
// not be resolved.
func handleConflicts(
	out io.Writer,
	conflicts []engine.Conflict,
	strat strategy,
	dropIdentical, interactive bool,
	ask prompter,
) int {
	if len(conflicts) == 0 {
		return 0
	}

	var failures []resolve.Failure
	remaining := conflicts
	if dropIdentical {
		same, different := resolve.SplitIdentical(conflicts)
		failures = append(failures, resolve.ResolveAll(same, resolve.All(resolve.KeepOriginal))...)
		if len(same) > 0 {
			fmt.Fprintf(out, "Discarded %d restored copies identical to the existing file.\n", len(same))
		}
		remaining = different
	}

	if len(remaining) > 0 {
		if strat == strategyAsk {
			strat = strategyLeave
			if interactive {
				chosen, err := ask.ChooseStrategy(len(remaining))
				if err != nil {
					slog.Warn("no conflict strategy chosen, leaving both versions", "error", err)
				} else {
					strat = chosen
				}
			}
		}

		choose := chooser(strat, remaining, ask)
		failures = append(failures, resolve.ResolveAll(remaining, choose)...)

		if strat == strategyLeave {
			fmt.Fprintf(out, "Left %d conflicts in place; restored copies carry a .restore name.\n", len(remaining))
		}
	}

	for _, f := range failures {
		if resolve.IsGone(f.Err) {
			fmt.Fprintf(out, "skipped %s: the restored copy no longer exists\n", f.Conflict.RestorePath)
		}
		slog.Error("resolving conflict",
			"restore_path", f.Conflict.RestorePath,
			"disposition", f.Disposition.String(),
			"error", f.Err,
		)
	}
	return len(failures)
}

// chooser turns a strategy into a per-conflict disposition. Prompts that
// fail or are aborted leave both files in place.
func chooser(strat strategy, conflicts []engine.Conflict, ask prompter) func(engine.Conflict) resolve.Disposition {
	switch strat {
	case strategyAdoptAll:
		return resolve.All(resolve.AdoptNew)
	case strategyKeepAll:
		return resolve.All(resolve.KeepOriginal)
	case strategyPerFolder:
		perDir := make(map[stddir.Dir]resolve.Disposition)
		counts := make(map[stddir.Dir]int)
		for _, c := range conflicts {
			counts[c.Dir]++
		}
		for _, d := range stddir.All {
			n, ok := counts[d]
			if !ok {
				continue
			}
			disp, err := ask.ChooseDisposition(fmt.Sprintf("%s: %d conflicts", d, n), "Applies to every conflict in this folder.")
			if err != nil {
				disp = resolve.LeaveBoth
			}
			perDir[d] = disp
		}
		return func(c engine.Conflict) resolve.Disposition { return perDir[c.Dir] }
	case strategyIndividually:
		aborted := false
		return func(c engine.Conflict) resolve.Disposition {
			if aborted {
				return resolve.LeaveBoth
			}
			disp, err := ask.ChooseDisposition(
				filepath.Base(c.OriginalPath),
				fmt.Sprintf("%s\nexisting: %s\nrestored: %s (%s)",
					c.Dir, c.OriginalPath, c.RestorePath, ui.FormatBytes(c.Size)),
			)
			if err != nil {
				aborted = true
				return resolve.LeaveBoth
			}
			return disp
		}
	default:
		return resolve.All(resolve.LeaveBoth)
	}
}
