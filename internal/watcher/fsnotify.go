package watcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/juju/clock"
)

// configMapData is the symlink Kubernetes swaps when a mounted ConfigMap
// is updated.
const configMapData = "..data"

// StartFsNotify triggers detect() when fsnotify reports relevant changes.
// The parent directory is watched so that editors replacing the file by
// rename are noticed.
func (w *Watcher) StartFsNotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	w.mu.RLock()
	dir := filepath.Dir(w.path)
	name := filepath.Base(w.path)
	w.mu.RUnlock()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	w.log.Info("watching for changes", "path", w.path)

	// Channel to request debounce resets
	resetCh := make(chan struct{}, 1)
	defer close(resetCh)

	// Debounce goroutine
	go func() {
		var t clock.Timer
		for range resetCh {
			if t != nil {
				t.Stop()
			}
			w.mu.RLock()
			debounce := w.debounce
			w.mu.RUnlock()
			t = w.clock.AfterFunc(debounce, func() {
				defer func() {
					if r := recover(); r != nil {
						w.log.Error("detect panic", "panic", r)
					}
				}()
				w.detect()
			})
		}
		if t != nil {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				w.log.Error("events channel closed")
				return nil
			}

			w.log.Debug("event", "name", ev.Name, "op", ev.Op)

			if base := filepath.Base(ev.Name); base != name && base != configMapData {
				continue
			}

			// Non-blocking send to reset debounce
			select {
			case resetCh <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}
