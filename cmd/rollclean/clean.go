package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rollclean/internal/mailbox"
	"github.com/raoulx24/rollclean/internal/worker"
)

func newCleanCmd(cfgFile *string) *cobra.Command {
	var (
		at         string
		targetName string
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Run one sweep and print what was removed",
		Long: `Run one retention sweep over all targets, or a single one.

For each target the archive of the period just outside the retention window
is deleted if it exists. Use --at to sweep as of another time, for instance
to catch up on periods missed while the daemon was down.

Examples:
  rollclean clean
  rollclean clean --target web/access --at 2024-03-10T00:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now, err := parseAt(at)
			if err != nil {
				return err
			}

			a, err := loadApp(*cfgFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			w, err := worker.New(a.cfg.Resolve(), a.deps(), mailbox.New[worker.Job]())
			if err != nil {
				return err
			}

			var reports []worker.Report
			if targetName != "" {
				t, ok := w.Target(targetName)
				if !ok {
					return fmt.Errorf("unknown target %q", targetName)
				}
				reports = []worker.Report{{Target: t.Name(), Result: t.Clean(cmd.Context(), now)}}
			} else {
				reports = w.Handle(cmd.Context(), worker.Job{At: now, Reason: "manual"})
			}

			failed := printReports(cmd.OutOrStdout(), reports)
			if failed > 0 {
				return fmt.Errorf("%d of %d targets reported cleanup failures", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "sweep as of this RFC 3339 time (default now)")
	cmd.Flags().StringVarP(&targetName, "target", "t", "", "only sweep this target")
	return cmd
}

func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: %w", s, err)
	}
	return t, nil
}

// printReports writes one line per target and returns how many failed.
func printReports(out io.Writer, reports []worker.Report) int {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tBOUNDARY\tPATH\tRESULT")

	failed := 0
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Target, r.Boundary.Format(time.RFC3339), r.Path, outcome(r))
		if r.Err != nil {
			failed++
		}
	}
	tw.Flush()
	return failed
}

func outcome(r worker.Report) string {
	switch {
	case r.Err != nil:
		return "error: " + r.Err.Error()
	case r.Removed == nil:
		return "nothing to remove"
	case len(r.Pruned) > 0:
		return fmt.Sprintf("removed %d bytes, pruned %d directories", r.Removed.Size, len(r.Pruned))
	default:
		return fmt.Sprintf("removed %d bytes", r.Removed.Size)
	}
}

