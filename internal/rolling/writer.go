// Package rolling provides a time-based rolling file writer.
//
// A Writer appends to the file of the current period. The first write at or
// after the next period boundary rolls the output over and then runs the
// retention cleaner for the new time, so archives that fell out of the
// window disappear as new ones are produced.
package rolling

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/juju/clock"

	"github.com/raoulx24/rollclean/internal/calendar"
	"github.com/raoulx24/rollclean/internal/fs"
	"github.com/raoulx24/rollclean/internal/logging"
	"github.com/raoulx24/rollclean/internal/pattern"
	"github.com/raoulx24/rollclean/internal/retention"
)

// ErrArchiveExists is returned by Rollover when the archive name for the
// period is already taken and the pattern has no free %i index.
var ErrArchiveExists = errors.New("archive already exists")

// maxIndex bounds the %i values tried for one period.
const maxIndex = 1000

// Cleaner applies retention for a point in time. *target.Target and
// *retention.Remover implement it.
type Cleaner interface {
	Clean(ctx context.Context, now time.Time) retention.Result
}

// Recorder counts rollovers. *metrics.Collector implements it.
type Recorder interface {
	Rollover(target string)
}

type Options struct {
	Name     string
	Pattern  *pattern.FileNamePattern
	Calendar *calendar.RollingCalendar
	// File is the active file. When empty, writes go directly to the
	// rendered path of the current period.
	File     string
	Cleaner  Cleaner
	FS       fs.FS
	Clock    clock.Clock
	Logger   logging.Logger
	Recorder Recorder
}

// Writer is an io.WriteCloser that rolls over on period boundaries.
// It is safe for concurrent use.
type Writer struct {
	mu   sync.Mutex
	opts Options
	log  logging.Logger

	f      *os.File
	path   string
	period time.Time // start of the period being written
	next   time.Time // start of the following period
	closed bool
}

// New opens the output for the current period. An existing active file
// belongs to the period of its modification time, so it is rolled over by
// the first write of a later period.
func New(opts Options) (*Writer, error) {
	if opts.Pattern == nil || opts.Calendar == nil {
		return nil, fmt.Errorf("rolling writer %s: pattern and calendar are required", opts.Name)
	}
	if opts.FS == nil {
		opts.FS = fs.New()
	}
	if opts.Clock == nil {
		opts.Clock = clock.WallClock
	}

	w := &Writer{
		opts: opts,
		log:  logging.Component(opts.Logger, "rolling"),
	}

	base := opts.Clock.Now()
	if opts.File != "" {
		if info, err := opts.FS.Stat(opts.File); err == nil && info.IsRegular && info.MTime.Before(base) {
			base = info.MTime
		}
	}
	w.setPeriod(base)

	if err := w.open(w.currentPath()); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) setPeriod(t time.Time) {
	w.period = w.opts.Calendar.Start(t)
	w.next = w.opts.Calendar.Next(t)
}

func (w *Writer) currentPath() string {
	if w.opts.File != "" {
		return w.opts.File
	}
	return w.opts.Pattern.Render(w.period)
}

func (w *Writer) open(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.opts.FS.MkdirAll(dir); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	w.f, w.path = f, path
	return nil
}

// Write writes p to the file of the current period, rolling over first if
// a period boundary has passed. A rollover refused with ErrArchiveExists
// does not fail the write: p goes to the active file, which is archived at
// the next boundary.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, os.ErrClosed
	}

	if now := w.opts.Clock.Now(); !now.Before(w.next) {
		if err := w.rollover(now); err != nil && !errors.Is(err, ErrArchiveExists) {
			return 0, err
		}
	}
	return w.f.Write(p)
}

// Rollover rolls the output over immediately.
func (w *Writer) Rollover() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return os.ErrClosed
	}
	return w.rollover(w.opts.Clock.Now())
}

func (w *Writer) rollover(now time.Time) error {
	ctx := context.Background()

	if w.opts.File != "" {
		archived, err := w.archivePath()
		if err != nil {
			w.setPeriod(now)
			w.log.Error("rollover refused, still writing to active file",
				"target", w.opts.Name, "file", w.opts.File, "error", err)
			return err
		}
		if err := w.opts.FS.MkdirAll(filepath.Dir(archived)); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(archived), err)
		}

		w.closeFile()
		if err := w.opts.FS.Rename(ctx, w.opts.File, archived); err != nil {
			// keep writing to the active file; the next write retries
			if oerr := w.open(w.opts.File); oerr != nil {
				return errors.Join(err, oerr)
			}
			return fmt.Errorf("archiving %s: %w", w.opts.File, err)
		}
		w.log.Info("archived active file", "target", w.opts.Name, "path", archived)
	} else {
		w.closeFile()
	}

	w.setPeriod(now)
	if err := w.open(w.currentPath()); err != nil {
		return err
	}

	if w.opts.Recorder != nil {
		w.opts.Recorder.Rollover(w.opts.Name)
	}

	if w.opts.Cleaner != nil {
		res := w.opts.Cleaner.Clean(ctx, now)
		if res.Err != nil {
			w.log.Warn("cleanup after rollover incomplete", "target", w.opts.Name, "path", res.Path, "error", res.Err)
		} else if res.Removed != nil {
			w.log.Debug("cleanup after rollover", "target", w.opts.Name, "removed", res.Removed.Path, "pruned", len(res.Pruned))
		}
	}
	return nil
}

func (w *Writer) closeFile() {
	if w.f == nil {
		return
	}
	if err := w.f.Close(); err != nil {
		w.log.Warn("closing rolled file failed", "target", w.opts.Name, "path", w.path, "error", err)
	}
	w.f = nil
}

// archivePath returns the name the active file is archived under: the
// rendered path of the current period or, if the pattern has a %i token,
// the first index that is still free. An existing archive is never
// replaced.
func (w *Writer) archivePath() (string, error) {
	p := w.opts.Pattern
	if !p.HasIndex() {
		path := p.Render(w.period)
		if w.exists(path) {
			return "", fmt.Errorf("%s: %w", path, ErrArchiveExists)
		}
		return path, nil
	}

	for i := 0; i < maxIndex; i++ {
		if path := p.RenderIndexed(w.period, i); !w.exists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: indexes 0 to %d taken: %w", p.Render(w.period), maxIndex-1, ErrArchiveExists)
}

// exists treats any Stat error other than not-exist as existing, so an
// unreadable archive is not overwritten.
func (w *Writer) exists(path string) bool {
	_, err := w.opts.FS.Stat(path)
	return !fs.IsNotExist(err)
}

// Path returns the file currently written to.
func (w *Writer) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Close closes the current file. Further writes fail with os.ErrClosed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.f == nil {
		return nil
	}
	return w.f.Close()
}
