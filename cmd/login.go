package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and sync your account from the bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.engine.Login(cmd.Context(), args[0]); err != nil {
				return err
			}

			session := app.engine.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Balance: $%.2f, reward points: %d.\n",
				session.User.Name, session.User.Balance, session.User.RewardPoints)
			return nil
		},
	}
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and remove the cached session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hydrate(cmd, app)
			if err := app.engine.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
