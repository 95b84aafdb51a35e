// Package plan turns scanned directory mappings into the concrete list of
// directories to create and files to copy.
package plan

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/bamsammich/homeward/internal/filter"
	"github.com/bamsammich/homeward/internal/scan"
	"github.com/bamsammich/homeward/internal/stddir"
)

// DirOp is a destination directory that must exist before any copy starts.
type DirOp struct {
	Dst string
}

// CopyOp copies one regular file.
type CopyOp struct {
	Src  string
	Dst  string
	Size int64
	Dir  stddir.Dir
}

// Plan is the full set of work for one restore.
type Plan struct {
	Dirs       []DirOp
	Files      []CopyOp
	TotalBytes int64
}

// Options configures Build.
type Options struct {
	// Exclude filters paths relative to each mapping root. Nil keeps
	// everything.
	Exclude *filter.Chain
}

// Build walks every mapping source, following symlinks, and emits one DirOp
// per directory (the mapping root included) and one CopyOp per file. A link
// back to a directory on the current descent is not followed. Any walk error
// aborts the build.
func Build(mappings []scan.Mapping, opts Options) (Plan, error) {
	var p Plan
	for _, m := range mappings {
		resolved, err := filepath.EvalSymlinks(m.Src)
		if err != nil {
			return Plan{}, fmt.Errorf("resolving %s: %w", m.Src, err)
		}
		b := builder{
			mapping:   m,
			exclude:   opts.Exclude,
			ancestors: make(map[string]bool),
			plan:      &p,
		}
		if err := b.dir(m.Src, m.Dst, "", resolved); err != nil {
			return Plan{}, err
		}
	}
	return p, nil
}

type builder struct {
	mapping   scan.Mapping
	exclude   *filter.Chain
	ancestors map[string]bool // resolved paths of the directories being descended
	plan      *Plan
}

// dir adds src and everything under it. rel is src's slash-separated
// position under the mapping root, used for filter matching; resolved is
// src with every symlink evaluated.
func (b *builder) dir(src, dst, rel, resolved string) error {
	if b.ancestors[resolved] {
		slog.Debug("symlink cycle cut", "path", src, "target", resolved)
		return nil
	}
	b.ancestors[resolved] = true
	defer delete(b.ancestors, resolved)

	b.plan.Dirs = append(b.plan.Dirs, DirOp{Dst: dst})

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("walking %s: %w", src, err)
	}
	for _, entry := range entries {
		entrySrc := filepath.Join(src, entry.Name())
		entryDst := filepath.Join(dst, entry.Name())
		entryRel := path.Join(rel, entry.Name())
		entryResolved := filepath.Join(resolved, entry.Name())

		info, err := os.Lstat(entrySrc)
		if err != nil {
			return fmt.Errorf("walking %s: %w", entrySrc, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if info, err = os.Stat(entrySrc); err != nil {
				return fmt.Errorf("following symlink %s: %w", entrySrc, err)
			}
			if entryResolved, err = filepath.EvalSymlinks(entrySrc); err != nil {
				return fmt.Errorf("following symlink %s: %w", entrySrc, err)
			}
		}

		if !b.exclude.Match(entryRel, info.IsDir()) {
			slog.Debug("excluded", "dir", b.mapping.Dir, "path", entryRel)
			continue
		}

		switch {
		case info.IsDir():
			if err := b.dir(entrySrc, entryDst, entryRel, entryResolved); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			b.plan.Files = append(b.plan.Files, CopyOp{
				Src:  entrySrc,
				Dst:  entryDst,
				Size: info.Size(),
				Dir:  b.mapping.Dir,
			})
			b.plan.TotalBytes += info.Size()
		default:
			slog.Debug("skipping special file", "path", entrySrc, "mode", info.Mode())
		}
	}
	return nil
}
