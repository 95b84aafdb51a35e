package event

import (
	"time"

	"github.com/bamsammich/homeward/internal/stddir"
)

// Type identifies the kind of event.
type Type int

const (
	CopyStarted Type = iota + 1
	DirCreated
	FileCopied
	FileConflict
	FileFailed
	CopyComplete
)

var typeNames = [...]string{
	CopyStarted:  "CopyStarted",
	DirCreated:   "DirCreated",
	FileCopied:   "FileCopied",
	FileConflict: "FileConflict",
	FileFailed:   "FileFailed",
	CopyComplete: "CopyComplete",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the copy engine.
type Event struct {
	Type        Type
	Timestamp   time.Time
	Path        string // intended destination path
	RestorePath string // FileConflict only: where the bytes actually went
	Size        int64  // declared size of the operation
	Total       int64  // total files (CopyStarted)
	TotalSize   int64  // total bytes (CopyStarted)
	Dir         stddir.Dir
	Error       error
	WorkerID    int
}
