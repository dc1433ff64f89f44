package watcher

import (
	"context"
	"time"
)

// StartPolling triggers detect() every poll interval. Interval changes from
// UpdateConfig apply from the next tick.
func (w *Watcher) StartPolling(ctx context.Context) {
	w.log.Info("polling for changes", "path", w.path, "interval", w.pollInterval())

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.clock.After(w.pollInterval()):
			w.detect()
		}
	}
}

func (w *Watcher) pollInterval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.interval
}
