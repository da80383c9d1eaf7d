package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCmd(open depsOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "token <username>",
		Short: "Mint an access token for a stored user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd, open, func(d *deps) error {
				ctx := cmd.Context()

				user, err := d.users.GetByUsername(ctx, args[0])
				if err != nil {
					return fmt.Errorf("look up %q: %w", args[0], err)
				}

				token, err := d.jwt.GenerateToken(ctx, user.ID, user.Role)
				if err != nil {
					return fmt.Errorf("generate token: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
}
