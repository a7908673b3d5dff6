package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the session live as background sync updates it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			writeStatus(cmd, session)
			fmt.Fprintln(cmd.OutOrStdout(), "\nWatching for updates, Ctrl-C to stop.")

			updates := app.engine.Subscribe()
			for {
				select {
				case <-ctx.Done():
					return nil
				case snapshot := <-updates:
					if snapshot.User == nil {
						fmt.Fprintln(cmd.OutOrStdout(), "\nSession ended.")
						return nil
					}
					fmt.Fprintln(cmd.OutOrStdout())
					writeStatus(cmd, snapshot)
				}
			}
		},
	}
	return cmd
}
