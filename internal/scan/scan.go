// Package scan locates standard directories inside a backup tree.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/kr/fs"

	"github.com/bamsammich/homeward/internal/stddir"
)

// Mapping pairs a standard directory found in the backup with the home
// directory it restores into.
type Mapping struct {
	Dir stddir.Dir
	Src string
	Dst string
}

// Result is the outcome of a scan. Warnings describe entries that could not
// be read; they never abort the scan.
type Result struct {
	Mappings []Mapping
	Warnings []error
}

// DestResolver maps a standard directory to its destination path.
type DestResolver func(stddir.Dir) string

// HomeResolver restores every directory to home/<Name>.
func HomeResolver(home string) DestResolver {
	return func(d stddir.Dir) string {
		return filepath.Join(home, d.String())
	}
}

// XDGResolver uses the user's XDG user-dirs configuration, so a localized
// or relocated Documents directory is honored. Directories XDG knows
// nothing about fall back to $HOME/<Name>.
func XDGResolver() DestResolver {
	return func(d stddir.Dir) string {
		var p string
		switch d {
		case stddir.Desktop:
			p = xdg.UserDirs.Desktop
		case stddir.Documents:
			p = xdg.UserDirs.Documents
		case stddir.Downloads:
			p = xdg.UserDirs.Download
		case stddir.Music:
			p = xdg.UserDirs.Music
		case stddir.Pictures:
			p = xdg.UserDirs.Pictures
		case stddir.Public:
			p = xdg.UserDirs.PublicShare
		case stddir.Templates:
			p = xdg.UserDirs.Templates
		case stddir.Videos:
			p = xdg.UserDirs.Videos
		}
		// xdg falls back to $HOME itself when a dir is unset; never restore into the bare home.
		if p == "" || filepath.Clean(p) == filepath.Clean(xdg.Home) {
			p = filepath.Join(xdg.Home, d.String())
		}
		return p
	}
}

// Scan walks backupRoot looking for directories named after a standard
// directory. A match is recorded and not descended into, so a Pictures
// folder inside Documents stays part of Documents. The root itself is never
// matched. Every match is returned, including several for the same Dir.
func Scan(backupRoot string, resolve DestResolver) Result {
	var res Result

	root := backupRoot
	if resolved, err := filepath.EvalSymlinks(backupRoot); err == nil {
		root = resolved
	}

	walker := fs.Walk(root)
	for walker.Step() {
		if err := walker.Err(); err != nil {
			res.Warnings = append(res.Warnings, fmt.Errorf("scan %s: %w", displayPath(backupRoot, root, walker.Path()), err))
			continue
		}
		if walker.Path() == root {
			continue
		}

		info := walker.Stat()
		if !info.IsDir() {
			continue
		}
		d, ok := stddir.Parse(info.Name())
		if !ok {
			continue
		}

		src := displayPath(backupRoot, root, walker.Path())
		slog.Debug("found standard directory", "dir", d, "path", src)
		res.Mappings = append(res.Mappings, Mapping{Dir: d, Src: src, Dst: resolve(d)})
		walker.SkipDir()
	}

	return res
}

// displayPath rewrites a path under the resolved root back under the root
// the caller passed in.
func displayPath(given, resolved, path string) string {
	if given == resolved {
		return path
	}
	rel, err := filepath.Rel(resolved, path)
	if err != nil {
		return path
	}
	return filepath.Join(given, rel)
}

// GroupByDir groups mappings by standard directory, preserving scan order
// within each group.
func GroupByDir(mappings []Mapping) map[stddir.Dir][]Mapping {
	groups := make(map[stddir.Dir][]Mapping)
	for _, m := range mappings {
		groups[m.Dir] = append(groups[m.Dir], m)
	}
	return groups
}

// Dirs returns the keys of a grouping in name order.
func Dirs(groups map[stddir.Dir][]Mapping) []stddir.Dir {
	dirs := make([]stddir.Dir, 0, len(groups))
	for d := range groups {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}

// Shallowest picks the candidate closest to the backup root, breaking ties
// by path. It is the non-interactive answer to "which Documents?".
func Shallowest(candidates []Mapping) Mapping {
	best := candidates[0]
	for _, c := range candidates[1:] {
		cd, bd := depth(c.Src), depth(best.Src)
		if cd < bd || (cd == bd && c.Src < best.Src) {
			best = c
		}
	}
	return best
}

func depth(p string) int {
	return strings.Count(filepath.ToSlash(filepath.Clean(p)), "/")
}

// Unique reduces a scan to one mapping per directory using pick for every
// directory found more than once. Results come back in name order.
func Unique(mappings []Mapping, pick func(stddir.Dir, []Mapping) (Mapping, error)) ([]Mapping, error) {
	groups := GroupByDir(mappings)
	chosen := make([]Mapping, 0, len(groups))
	for _, d := range Dirs(groups) {
		candidates := groups[d]
		if len(candidates) == 1 {
			chosen = append(chosen, candidates[0])
			continue
		}
		m, err := pick(d, candidates)
		if err != nil {
			return nil, fmt.Errorf("choose %s: %w", d, err)
		}
		chosen = append(chosen, m)
	}
	return chosen, nil
}

// SourceExists reports whether a mapping's source is still a directory.
func (m Mapping) SourceExists() bool {
	info, err := os.Stat(m.Src)
	return err == nil && info.IsDir()
}
