// Package worker sweeps retention targets for jobs taken from a mailbox.
package worker

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/raoulx24/rollclean/internal/config"
	"github.com/raoulx24/rollclean/internal/logging"
	"github.com/raoulx24/rollclean/internal/mailbox"
	"github.com/raoulx24/rollclean/internal/retention"
	"github.com/raoulx24/rollclean/internal/target"
)

// Forgetter drops metrics of targets that were removed from the config.
type Forgetter interface {
	Forget(target string)
}

// Report is the outcome of one target's retention pass.
type Report struct {
	Target string
	retention.Result
}

// Worker owns the configured targets and applies retention to them.
type Worker struct {
	mu      sync.RWMutex
	targets map[string]*target.Target
	deps    target.Deps
	log     logging.Logger
	mb      *mailbox.Mailbox[Job]
}

// New creates a worker for the resolved targets.
func New(targets []config.Target, deps target.Deps, mb *mailbox.Mailbox[Job]) (*Worker, error) {
	w := &Worker{
		targets: map[string]*target.Target{},
		deps:    deps,
		log:     logging.Component(deps.Logger, "worker"),
		mb:      mb,
	}
	w.log.Debug("creating worker")
	if err := w.UpdateConfig(targets); err != nil {
		return nil, err
	}
	return w, nil
}

// Start runs the worker loop using mailbox semantics until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("starting worker")

	go func() {
		<-ctx.Done()
		w.mb.Close()
	}()

	for {
		job, ok := w.mb.Take()
		if !ok || ctx.Err() != nil {
			w.log.Info("worker stopped")
			return
		}
		w.Handle(ctx, job)
	}
}

// Handle sweeps every target once, in name order.
func (w *Worker) Handle(ctx context.Context, job Job) []Report {
	w.log.Debug("sweeping targets", "at", job.At, "reason", job.Reason)

	targets := w.Targets()
	reports := make([]Report, 0, len(targets))
	for _, t := range targets {
		if ctx.Err() != nil {
			break
		}
		res := t.Clean(ctx, job.At)
		reports = append(reports, Report{Target: t.Name(), Result: res})
	}
	return reports
}

// Targets returns the current targets sorted by name.
func (w *Worker) Targets() []*target.Target {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*target.Target, 0, len(w.targets))
	for _, t := range w.targets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}

// Target returns the target with the given name.
func (w *Worker) Target(name string) (*target.Target, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.targets[name]
	return t, ok
}

// UpdateConfig hot-reloads the target set. Targets whose files are unchanged
// are kept and only get their window updated. A target that fails to build
// keeps its previous version, if any; all such failures are returned.
func (w *Worker) UpdateConfig(targets []config.Target) error {
	w.log.Debug("entering Worker.UpdateConfig()")

	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	next := make(map[string]*target.Target, len(targets))

	for _, tc := range targets {
		if old, ok := w.targets[tc.Name]; ok && old.SameOutput(tc) {
			if err := old.SetMaxHistory(tc.Window()); err != nil {
				errs = append(errs, err)
			}
			next[tc.Name] = old
			continue
		}

		t, err := target.Build(tc, w.deps)
		if err != nil {
			errs = append(errs, err)
			if old, ok := w.targets[tc.Name]; ok {
				next[tc.Name] = old
			}
			continue
		}
		next[tc.Name] = t
		w.log.Info("target configured", "target", tc.Name, "pattern", tc.FileNamePattern, "maxHistory", tc.Window())
	}

	for name := range w.targets {
		if _, ok := next[name]; ok {
			continue
		}
		if f, ok := w.deps.Recorder.(Forgetter); ok {
			f.Forget(name)
		}
		w.log.Info("target removed", "target", name)
	}

	w.targets = next
	return errors.Join(errs...)
}
