package engine

import (
	"os"
	"sync"
)

// inFlight tracks destination files that are open for writing, so an
// interrupted run can remove them instead of leaving truncated copies.
var inFlight = &registry{}

type registry struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (r *registry) add(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paths == nil {
		r.paths = make(map[string]struct{})
	}
	r.paths[path] = struct{}{}
}

func (r *registry) remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paths, path)
}

// cleanup removes every registered file and empties the registry.
func (r *registry) cleanup() []string {
	r.mu.Lock()
	paths := make([]string, 0, len(r.paths))
	for p := range r.paths {
		paths = append(paths, p)
	}
	r.paths = nil
	r.mu.Unlock()

	var removed []string
	for _, p := range paths {
		if err := os.Remove(p); err == nil {
			removed = append(removed, p)
		}
	}
	return removed
}

// CleanupInFlight removes every destination file still being written and
// returns the paths it removed. Called from the interrupt handler.
func CleanupInFlight() []string {
	return inFlight.cleanup()
}
