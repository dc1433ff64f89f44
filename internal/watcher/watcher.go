// Package watcher monitors the config file and reports when it changes.
package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/juju/clock"

	"github.com/raoulx24/rollclean/internal/config"
	"github.com/raoulx24/rollclean/internal/fsprobe"
	"github.com/raoulx24/rollclean/internal/logging"
)

// Watcher observes one file and calls onChange when its modification time
// advances.
type Watcher struct {
	mu sync.RWMutex

	path      string
	interval  time.Duration
	mode      string
	debounce  time.Duration
	stability time.Duration

	log   logging.Logger
	clock clock.Clock

	lastModTime time.Time

	onChange func()
}

// New creates a watcher for path. Changes that happened before New are not
// reported.
func New(path string, cfg config.ReloadConfig, log logging.Logger, onChange func()) *Watcher {
	w := &Watcher{
		path:      path,
		interval:  cfg.PollInterval,
		mode:      cfg.Method,
		debounce:  cfg.DebounceWindow,
		stability: cfg.DebounceWindow / 2,
		log:       logging.Component(log, "watcher"),
		clock:     clock.WallClock,
		onChange:  onChange,
	}
	if info, err := os.Stat(path); err == nil {
		w.lastModTime = info.ModTime()
	}
	return w
}

// Start chooses the watching strategy based on config and blocks until ctx
// is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.RLock()
	mode := w.mode
	w.mu.RUnlock()

	switch mode {
	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		w.StartPolling(ctx)
		return nil

	case "auto":
		res := fsprobe.Probe(w.dir())
		if res.FsnotifySupported {
			return w.StartFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled, polling instead", "reason", res.Reason)
		w.StartPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}
