package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/phrazzld/tango-api/internal/store"
	"github.com/spf13/cobra"
)

func newShiftCmd(open depsOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "shift <username> <days>",
		Short: "Move a learner's last advance and answers back by N days",
		Long: "Moves last_advance_at and every answer timestamp of the learner N days into the past,\n" +
			"as if that many days had elapsed. A negative N moves them forward.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("days must be an integer: %w", err)
			}

			return withDeps(cmd, open, func(d *deps) error {
				ctx := cmd.Context()

				user, err := d.users.GetByUsername(ctx, args[0])
				if err != nil {
					return fmt.Errorf("look up %q: %w", args[0], err)
				}

				by := -time.Duration(days) * 24 * time.Hour
				var shifted int64
				err = store.RunInTransaction(ctx, d.db, func(ctx context.Context, tx *sql.Tx) error {
					err := d.progress.WithTx(tx).ShiftLastAdvance(ctx, user.ID, by)
					if err != nil && !store.IsNotFoundError(err) {
						return err
					}
					shifted, err = d.answers.WithTx(tx).ShiftTimestamps(ctx, user.ID, by)
					return err
				})
				if err != nil {
					return fmt.Errorf("shift timestamps: %w", err)
				}

				d.logger.Info("shifted learner timestamps",
					slog.String("username", user.Username),
					slog.Int("days", days),
					slog.Int64("answers", shifted))
				fmt.Fprintf(cmd.OutOrStdout(), "shifted %s by %d day(s): %d answer(s) updated\n",
					user.Username, days, shifted)
				return nil
			})
		},
	}
}
