package watcher

import (
	"github.com/raoulx24/rollclean/internal/config"
)

// UpdateConfig updates the timing fields for hot-reload. A new method only
// takes effect on restart.
func (w *Watcher) UpdateConfig(cfg config.ReloadConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.interval = cfg.PollInterval
	w.debounce = cfg.DebounceWindow
	w.stability = cfg.DebounceWindow / 2
}
