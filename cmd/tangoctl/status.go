package main

import (
	"fmt"
	"time"

	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/spf13/cobra"
)

func newStatusCmd(open depsOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "status <username>",
		Short: "Show a learner's section, last advance and answer count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, open, func(d *deps) error {
				ctx := cmd.Context()
				out := cmd.OutOrStdout()

				user, err := d.users.GetByUsername(ctx, args[0])
				if err != nil {
					return fmt.Errorf("look up %q: %w", args[0], err)
				}

				progress, err := d.progress.Get(ctx, user.ID)
				switch {
				case store.IsNotFoundError(err):
					progress = domain.NewProgress(user.ID)
				case err != nil:
					return fmt.Errorf("load progress: %w", err)
				}

				count, err := d.answers.Count(ctx, user.ID)
				if err != nil {
					return fmt.Errorf("count answers: %w", err)
				}

				fmt.Fprintf(out, "user:     %s (%s)\n", user.Username, user.Role)
				fmt.Fprintf(out, "id:       %s\n", user.ID)
				fmt.Fprintf(out, "section:  %d\n", progress.CurrentSection)
				if progress.LastAdvanceAt == nil {
					fmt.Fprintln(out, "advanced: never")
				} else {
					at := progress.LastAdvanceAt.UTC()
					fmt.Fprintf(out, "advanced: %s (regional %s)\n",
						at.Format(time.RFC3339),
						at.Add(domain.RegionalOffset).Format("2006-01-02 15:04"))
				}
				fmt.Fprintf(out, "answers:  %d\n", count)
				return nil
			})
		},
	}
}
