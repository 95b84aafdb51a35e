// Package stddir defines the fixed set of personal-data directories that
// homeward knows how to restore.
package stddir

// Dir identifies one of the standard home directories.
type Dir int

// Declaration order matches name order, so Dir values sort by name.
const (
	Desktop Dir = iota + 1
	Documents
	Downloads
	Music
	Pictures
	Public
	Templates
	Videos
)

var dirNames = [...]string{
	Desktop:   "Desktop",
	Documents: "Documents",
	Downloads: "Downloads",
	Music:     "Music",
	Pictures:  "Pictures",
	Public:    "Public",
	Templates: "Templates",
	Videos:    "Videos",
}

// All lists every standard directory in name order.
var All = [...]Dir{Desktop, Documents, Downloads, Music, Pictures, Public, Templates, Videos}

// String returns the directory name as it appears on disk.
func (d Dir) String() string {
	if d > 0 && int(d) < len(dirNames) {
		return dirNames[d]
	}
	return "Unknown"
}

// Valid reports whether d is one of the eight standard directories.
func (d Dir) Valid() bool {
	return d >= Desktop && d <= Videos
}

// Parse maps an on-disk directory name to a Dir. Matching is exact and
// case-sensitive.
func Parse(name string) (Dir, bool) {
	for _, d := range All {
		if dirNames[d] == name {
			return d, true
		}
	}
	return 0, false
}
