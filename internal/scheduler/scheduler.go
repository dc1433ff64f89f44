// Package scheduler triggers retention sweeps on a cron schedule.
//
// Each firing puts a worker.Job stamped with the current time into the
// worker's mailbox. A sweep that is still pending when the next one fires is
// replaced, so a slow filesystem never builds up a backlog.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/robfig/cron/v3"

	"github.com/raoulx24/rollclean/internal/logging"
	"github.com/raoulx24/rollclean/internal/mailbox"
	"github.com/raoulx24/rollclean/internal/worker"
)

// Scheduler manages scheduled sweeps.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	entry   cron.EntryID
	spec    string
	clock   clock.Clock
	mb      *mailbox.Mailbox[worker.Job]
	log     logging.Logger
	running bool
}

// New creates a scheduler for a standard cron expression or descriptor
// ("0 * * * *", "@hourly"). An empty spec disables scheduled sweeps.
func New(spec string, clk clock.Clock, mb *mailbox.Mailbox[worker.Job], log logging.Logger) *Scheduler {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Scheduler{
		cron:  cron.New(),
		spec:  spec,
		clock: clk,
		mb:    mb,
		log:   logging.Component(log, "scheduler"),
	}
}

// Start schedules sweeps and stops them when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spec == "" {
		s.log.Info("sweep schedule not configured, skipping scheduler")
		return nil
	}

	id, err := s.add(s.spec)
	if err != nil {
		return err
	}
	s.entry = id

	s.cron.Start()
	s.running = true
	s.log.Info("sweep scheduler started", "schedule", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) add(spec string) (cron.EntryID, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return 0, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	id, err := s.cron.AddFunc(spec, func() { s.Trigger("schedule") })
	if err != nil {
		return 0, fmt.Errorf("failed to schedule sweeps: %w", err)
	}
	return id, nil
}

// Trigger requests an immediate sweep as of the current time.
func (s *Scheduler) Trigger(reason string) {
	job := worker.Job{At: s.clock.Now(), Reason: reason}
	s.log.Debug("sweep requested", "reason", reason, "at", job.At)
	s.mb.Put(job)
}

// UpdateSchedule replaces the cron expression of a running scheduler.
func (s *Scheduler) UpdateSchedule(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if spec == s.spec {
		return nil
	}

	if spec == "" {
		s.cron.Remove(s.entry)
		s.entry = 0
		s.spec = ""
		return nil
	}

	id, err := s.add(spec)
	if err != nil {
		return err
	}
	if s.entry != 0 {
		s.cron.Remove(s.entry)
	}
	s.entry, s.spec = id, spec
	s.log.Info("sweep schedule updated", "schedule", spec)
	return nil
}

// Stop stops the scheduler and waits for a running trigger to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.log.Info("sweep scheduler stopped")
	}
}

// NextRun returns the next scheduled sweep, or nil when nothing is scheduled
// or the scheduler is not running.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry == 0 {
		return nil
	}
	next := s.cron.Entry(s.entry).Next
	if next.IsZero() {
		return nil
	}
	return &next
}
