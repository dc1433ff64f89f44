package main

import (
	"fmt"
	"io"

	"github.com/juju/clock"
	"github.com/spf13/cobra"

	"github.com/raoulx24/rollclean/internal/rolling"
	"github.com/raoulx24/rollclean/internal/target"
)

func newPipeCmd(cfgFile *string) *cobra.Command {
	var targetName string

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Copy stdin into a rolling file for a target",
		Long: `Copy stdin into the target's rolling output until EOF.

The output rolls over at each period boundary of the target's pattern. If the
target has a file, it is the active file and is renamed into the pattern on
rollover. After every rollover the target's retention is applied.

Example:
  myapp 2>&1 | rollclean pipe --target web/access`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(*cfgFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tc, ok := a.cfg.Target(targetName)
			if !ok {
				return fmt.Errorf("unknown target %q", targetName)
			}

			deps := a.deps()
			t, err := target.Build(tc, deps)
			if err != nil {
				return err
			}

			w, err := rolling.New(rolling.Options{
				Name:     t.Name(),
				Pattern:  t.Pattern(),
				Calendar: t.Calendar(),
				File:     t.File(),
				Cleaner:  t,
				FS:       deps.FS,
				Clock:    clock.WallClock,
				Logger:   a.log,
				Recorder: a.metrics,
			})
			if err != nil {
				return err
			}

			_, copyErr := io.Copy(w, cmd.InOrStdin())
			if err := w.Close(); err != nil && copyErr == nil {
				copyErr = err
			}
			return copyErr
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", "target to write (required)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
