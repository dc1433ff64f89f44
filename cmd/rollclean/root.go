package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rollclean/internal/config"
	"github.com/raoulx24/rollclean/internal/fs"
	"github.com/raoulx24/rollclean/internal/logging"
	"github.com/raoulx24/rollclean/internal/metrics"
	"github.com/raoulx24/rollclean/internal/target"
)

// Version is set at build time.
var Version = "dev"

// newRootCmd builds the command tree. Flags live on the commands so that
// every invocation starts from a clean state.
func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "rollclean",
		Short: "Time-based retention for rolling log archives",
		Long: `rollclean deletes rolled-over archives that fell out of their retention
window and prunes the date directories they leave empty.

Targets, windows and the sweep schedule are read from a YAML config file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")

	root.AddCommand(
		newRunCmd(&cfgFile),
		newCleanCmd(&cfgFile),
		newPlanCmd(&cfgFile),
		newPipeCmd(&cfgFile),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every command needs after loading the config.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Collector
}

func loadApp(path string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.Logging, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return &app{cfg: cfg, log: log, metrics: metrics.NewCollector(nil)}, nil
}

func (a *app) deps() target.Deps {
	return target.Deps{
		FS:       fs.New(),
		Logger:   a.log,
		Recorder: a.metrics,
	}
}
