package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/juju/clock"
	"github.com/spf13/cobra"

	"github.com/raoulx24/rollclean/internal/config"
	"github.com/raoulx24/rollclean/internal/mailbox"
	"github.com/raoulx24/rollclean/internal/scheduler"
	"github.com/raoulx24/rollclean/internal/watcher"
	"github.com/raoulx24/rollclean/internal/worker"
)

func newRunCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sweep daemon",
		Long: `Run sweeps on the configured cron schedule until interrupted.

The config file is reloaded when it changes on disk or on SIGHUP. Targets
whose pattern and file are unchanged keep their state; only their window is
updated. Metrics are served on the configured listen address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDaemon(ctx, *cfgFile, cmd)
		},
	}
}

func runDaemon(ctx context.Context, cfgFile string, cmd *cobra.Command) error {
	a, err := loadApp(cfgFile, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log := a.log
	cfg := a.cfg

	// Mailbox for sweep jobs
	mb := mailbox.New[worker.Job]()

	w, err := worker.New(cfg.Resolve(), a.deps(), mb)
	if err != nil {
		return err
	}

	sched := scheduler.New(cfg.Schedule.Cron, clock.WallClock, mb, log)

	go w.Start(ctx)

	if err := sched.Start(ctx); err != nil {
		return err
	}
	logNextRun(log, sched)
	if cfg.Schedule.CleanOnStart {
		sched.Trigger("startup")
	}

	if cfg.Metrics.Enabled {
		srv := metricsServer(cfg.Metrics, a)
		go func() {
			log.Info("serving metrics", "listen", cfg.Metrics.Listen, "path", cfg.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var (
		reloadMu sync.Mutex
		watch    *watcher.Watcher
	)
	reload := func() {
		reloadMu.Lock()
		defer reloadMu.Unlock()

		newCfg, err := config.Load(cfgFile)
		if err != nil {
			log.Error("config reload failed", "error", err)
			return
		}

		// Apply updates
		if err := w.UpdateConfig(newCfg.Resolve()); err != nil {
			log.Error("some targets could not be reloaded", "error", err)
		}
		if err := sched.UpdateSchedule(newCfg.Schedule.Cron); err != nil {
			log.Error("schedule reload failed", "error", err)
		} else {
			logNextRun(log, sched)
		}
		if watch != nil {
			watch.UpdateConfig(newCfg.ConfigReload)
		}

		log.Info("config reloaded")
		sched.Trigger("reload")
	}

	if cfg.ConfigReload.Enabled {
		watch = watcher.New(cfgFile, cfg.ConfigReload, log, reload)
		go func() {
			if err := watch.Start(ctx); err != nil {
				log.Error("config watcher stopped", "error", err)
			}
		}()
	}

	// Hot reload on SIGHUP
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case <-hup:
			reload()
		}
	}
}

func logNextRun(log *slog.Logger, sched *scheduler.Scheduler) {
	if next := sched.NextRun(); next != nil {
		log.Info("next scheduled sweep", "at", next.Format(time.RFC3339))
	}
}

func metricsServer(cfg config.MetricsConfig, a *app) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, a.metrics.Handler())
	return &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
