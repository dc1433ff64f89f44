// Package target binds a configured rolling output to its retention engine.
package target

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raoulx24/rollclean/internal/calendar"
	"github.com/raoulx24/rollclean/internal/config"
	"github.com/raoulx24/rollclean/internal/fs"
	"github.com/raoulx24/rollclean/internal/logging"
	"github.com/raoulx24/rollclean/internal/pattern"
	"github.com/raoulx24/rollclean/internal/retention"
)

// Deps are the collaborators shared by all targets.
type Deps struct {
	FS       fs.FS
	Logger   logging.Logger
	Recorder retention.Recorder
}

// Target is a named rolling output. Clean calls on one Target are
// serialized, whoever triggers them.
type Target struct {
	mu       sync.Mutex
	cfg      config.Target
	pattern  *pattern.FileNamePattern
	calendar *calendar.RollingCalendar
	remover  *retention.Remover
}

// Build parses the target's pattern, derives its calendar and creates its
// remover with the resolved window.
func Build(tc config.Target, deps Deps) (*Target, error) {
	p, err := pattern.Parse(tc.FileNamePattern)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", tc.Name, err)
	}

	cal, err := calendar.New(p)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", tc.Name, err)
	}

	r := retention.New(p, cal, retention.Options{
		Name:     tc.Name,
		FS:       deps.FS,
		Logger:   deps.Logger,
		Recorder: deps.Recorder,
	})
	if err := r.SetMaxHistory(tc.Window()); err != nil {
		return nil, fmt.Errorf("target %s: %w", tc.Name, err)
	}

	return &Target{cfg: tc, pattern: p, calendar: cal, remover: r}, nil
}

func (t *Target) Name() string { return t.cfg.Name }

func (t *Target) File() string { return t.cfg.File }

func (t *Target) Pattern() *pattern.FileNamePattern { return t.pattern }

func (t *Target) Calendar() *calendar.RollingCalendar { return t.calendar }

// SameOutput reports whether tc describes the same files as t, so that t can
// be kept across a config reload.
func (t *Target) SameOutput(tc config.Target) bool {
	return t.cfg.FileNamePattern == tc.FileNamePattern && t.cfg.File == tc.File
}

// Clean runs one retention pass for now.
func (t *Target) Clean(ctx context.Context, now time.Time) retention.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remover.Clean(ctx, now)
}

// Plan returns the boundary date and archive path Clean would target.
func (t *Target) Plan(now time.Time) (time.Time, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remover.Boundary(now)
}

// SetMaxHistory changes the retention window.
func (t *Target) SetMaxHistory(n int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.remover.SetMaxHistory(n); err != nil {
		return err
	}
	t.cfg.MaxHistory = &n
	return nil
}

// MaxHistory returns the retention window.
func (t *Target) MaxHistory() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remover.MaxHistory()
}

// ParentClean reports whether cleanup prunes emptied directories.
func (t *Target) ParentClean() bool {
	return t.remover.ParentClean()
}
