package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/rollclean/internal/fs"
	"github.com/raoulx24/rollclean/internal/mailbox"
	"github.com/raoulx24/rollclean/internal/worker"
)

func newPlanCmd(cfgFile *string) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show which archive each target would remove",
		Long: `Print, for every target, its rollover period, retention window and the
archive a sweep would remove, without deleting anything.`,
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

			fsys := fs.New()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TARGET\tPERIOD\tKEEP\tBOUNDARY\tPATH\tEXISTS\tPRUNE DIRS")
			for _, t := range w.Targets() {
				boundary, path := t.Plan(now)
				_, statErr := fsys.Stat(path)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%t\t%t\n",
					t.Name(),
					t.Calendar().Periodicity(),
					t.MaxHistory(),
					boundary.Format(time.RFC3339),
					path,
					statErr == nil,
					t.ParentClean(),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "plan as of this RFC 3339 time (default now)")
	return cmd
}
