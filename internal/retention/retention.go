// Package retention removes archives that fell out of the retention window.
//
// A Remover is bound to one file name pattern and one rolling calendar.
// Each call to Clean targets exactly one archive: the one rendered for the
// period maxHistory+1 periods before now. If that file exists it is deleted
// and, when the pattern spreads time components over directories, the
// parents it leaves empty are pruned (at most maxParentDepth of them).
//
// Cleanup is best-effort: failures are reported in the Result, logged and
// counted, but never returned to the caller as an error.
package retention

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/raoulx24/rollclean/internal/archive"
	"github.com/raoulx24/rollclean/internal/fs"
	"github.com/raoulx24/rollclean/internal/logging"
	"github.com/raoulx24/rollclean/internal/pattern"
)

// Template renders the archive path for a point in time.
type Template interface {
	Render(t time.Time) string
	Segments() []pattern.Segment
}

// Calendar moves a timestamp by whole rollover periods.
type Calendar interface {
	Shift(t time.Time, periods int) time.Time
}

// Recorder receives retention metrics. *metrics.Collector implements it.
type Recorder interface {
	ArchiveRemoved(target string, bytes int64)
	RemovalFailed(target string)
	DirectoryPruned(target string)
	RetentionWindow(target string, periods int)
}

// ErrNegativeWindow is returned by SetMaxHistory for a negative window.
var ErrNegativeWindow = errors.New("retention window must not be negative")

// Options holds the optional collaborators of a Remover.
type Options struct {
	// Name identifies the target in logs and metrics.
	Name     string
	FS       fs.FS
	Logger   logging.Logger
	Recorder Recorder
}

// Remover deletes the single archive that became obsolete at a given time.
// It holds no lock; callers serialize Clean per target.
type Remover struct {
	name     string
	tpl      Template
	cal      Calendar
	fs       fs.FS
	log      logging.Logger
	recorder Recorder

	maxHistory   int
	periodOffset int
	parentClean  bool
}

// New creates a Remover with a window of zero periods.
func New(tpl Template, cal Calendar, opts Options) *Remover {
	if opts.FS == nil {
		opts.FS = fs.New()
	}
	r := &Remover{
		name:        opts.Name,
		tpl:         tpl,
		cal:         cal,
		fs:          opts.FS,
		log:         logging.Component(opts.Logger, "retention"),
		recorder:    opts.Recorder,
		parentClean: parentCleaningNeeded(tpl.Segments()),
	}
	r.apply(0)
	return r
}

// SetMaxHistory sets the number of periods to keep. The boundary offset is
// always -(n+1): the period just older than the oldest one kept.
func (r *Remover) SetMaxHistory(n int) error {
	if n < 0 {
		return ErrNegativeWindow
	}
	r.apply(n)
	return nil
}

func (r *Remover) apply(n int) {
	r.maxHistory, r.periodOffset = n, -n-1
	if r.recorder != nil {
		r.recorder.RetentionWindow(r.name, n)
	}
}

// MaxHistory returns the retention window in periods.
func (r *Remover) MaxHistory() int { return r.maxHistory }

// PeriodOffset returns the offset of the targeted period, -(MaxHistory+1).
func (r *Remover) PeriodOffset() int { return r.periodOffset }

// ParentClean reports whether Clean prunes emptied parent directories.
func (r *Remover) ParentClean() bool { return r.parentClean }

// Boundary returns the date and path of the archive Clean would target.
func (r *Remover) Boundary(now time.Time) (time.Time, string) {
	date := r.cal.Shift(now, r.periodOffset)
	return date, r.tpl.Render(date)
}

// Result describes the outcome of a single Clean call.
type Result struct {
	Boundary time.Time
	Path     string
	// Removed is set when the archive was deleted.
	Removed *archive.Artifact
	// Pruned lists removed parent directories, innermost first.
	Pruned []string
	// Err is the first failure encountered; it has already been logged.
	Err error
}

// Clean deletes the archive of the period periodOffset periods before now,
// if it exists as a regular file.
func (r *Remover) Clean(ctx context.Context, now time.Time) Result {
	var res Result
	res.Boundary, res.Path = r.Boundary(now)

	if res.Path == "" {
		r.log.Debug("empty archive path, nothing to clean", "target", r.name, "boundary", res.Boundary)
		return res
	}

	info, err := r.fs.Stat(res.Path)
	if err != nil {
		if !fs.IsNotExist(err) {
			r.fail(&res, "stat", res.Path, err)
		}
		return res
	}
	if !info.IsRegular {
		r.log.Debug("archive path is not a regular file, skipping", "target", r.name, "path", res.Path)
		return res
	}

	if err := r.fs.Remove(ctx, res.Path); err != nil {
		// already gone: another cleaner got there first
		if !fs.IsNotExist(err) {
			r.fail(&res, "remove", res.Path, err)
		}
		return res
	}

	removed := archive.FromFileInfo(info)
	res.Removed = &removed
	if r.recorder != nil {
		r.recorder.ArchiveRemoved(r.name, info.Size)
	}
	r.log.Info("archive removed",
		"target", r.name,
		"path", res.Path,
		"boundary", res.Boundary,
		"size", info.Size,
	)

	if r.parentClean {
		r.pruneIfEmpty(ctx, filepath.Dir(res.Path), &res)
	}

	return res
}

func (r *Remover) fail(res *Result, op, path string, err error) {
	rerr := &RemovalError{Op: op, Path: path, Cause: err}
	if res.Err == nil {
		res.Err = rerr
	}
	if r.recorder != nil {
		r.recorder.RemovalFailed(r.name)
	}
	r.log.Warn("retention cleanup failed", "target", r.name, "error", rerr)
}

// parentCleaningNeeded reports whether a path separator can appear at or
// after the date segment, i.e. whether time values create directories.
// Separators before the date segment never do.
func parentCleaningNeeded(segs []pattern.Segment) bool {
	seenDate := false
	for _, seg := range segs {
		switch {
		case seg.Kind == pattern.Date:
			if hasSeparator(seg.Text) {
				return true
			}
			seenDate = true
		case seenDate && seg.Kind == pattern.Literal:
			if hasSeparator(seg.Text) {
				return true
			}
		}
	}
	return false
}

func hasSeparator(s string) bool {
	return strings.ContainsAny(s, `/`+string(filepath.Separator))
}
