package watcher

import (
	"os"
	"path/filepath"
)

func (w *Watcher) dir() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return filepath.Dir(w.path)
}

// detect calls onChange if the file was modified since the last call and
// is not being written to.
func (w *Watcher) detect() {
	w.mu.RLock()
	path := w.path
	last := w.lastModTime
	w.mu.RUnlock()

	info, err := os.Stat(path)
	if err != nil {
		w.log.Debug("stat failed", "path", path, "error", err)
		return
	}

	mod := info.ModTime()
	if !mod.After(last) {
		return
	}

	if !w.isStable() {
		w.log.Debug("file still changing, waiting", "path", path)
		return
	}

	w.mu.Lock()
	w.lastModTime = mod
	w.mu.Unlock()

	w.log.Info("file changed", "path", path, "modTime", mod)
	w.onChange()
}
