package watcher

import "os"

// isStable reports whether the file kept its size and modification time over
// the stability window.
func (w *Watcher) isStable() bool {
	w.mu.RLock()
	path := w.path
	stability := w.stability
	w.mu.RUnlock()

	if stability <= 0 {
		return true
	}

	info1, err := os.Stat(path)
	if err != nil {
		return false
	}

	<-w.clock.After(stability)

	info2, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info1.Size() == info2.Size() && info1.ModTime().Equal(info2.ModTime())
}
