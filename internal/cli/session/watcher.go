package session

import (
	"context"
	"os"
	"time"
)

// Watcher polls the session state file and reports when another process
// changed it. The browser original of this system converged tabs through
// storage events; separate CLI processes have no equivalent primitive, so
// convergence is a poll on the state file's size and mtime.
type Watcher struct {
	path     string
	interval time.Duration

	exists bool
	mod    time.Time
	size   int64
}

// NewWatcher creates a watcher for the given state file path
func NewWatcher(path string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Watcher{path: path, interval: interval}
}

// Run polls until ctx is cancelled, invoking onChange after every observed
// change to the state file (including its creation and removal). The
// current state at the time Run starts is the baseline and does not fire.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	w.exists, w.mod, w.size = w.snapshot()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			exists, mod, size := w.snapshot()
			if exists != w.exists || !mod.Equal(w.mod) || size != w.size {
				w.exists, w.mod, w.size = exists, mod, size
				onChange()
			}
		}
	}
}

func (w *Watcher) snapshot() (bool, time.Time, int64) {
	info, err := os.Stat(w.path)
	if err != nil {
		return false, time.Time{}, 0
	}
	return true, info.ModTime(), info.Size()
}
