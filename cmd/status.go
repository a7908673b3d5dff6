package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/domain"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		cached bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show balance, reward points, and sync state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}
			if !cached {
				session = refreshSession(cmd, app)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(session)
			}

			writeStatus(cmd, session)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the session snapshot as JSON")
	cmd.Flags().BoolVar(&cached, "cached", false, "show the cached snapshot without contacting the bank")

	return cmd
}

func writeStatus(cmd *cobra.Command, session domain.Session) {
	out := cmd.OutOrStdout()
	user := session.User

	fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
	if user.Phone != "" {
		fmt.Fprintf(out, "Phone:         %s\n", user.Phone)
	}
	fmt.Fprintf(out, "Balance:       $%.2f\n", user.Balance)
	fmt.Fprintf(out, "Reward points: %d\n", user.RewardPoints)
	fmt.Fprintf(out, "Transactions:  %d\n", len(session.Transactions))
	fmt.Fprintf(out, "Last synced:   %s\n", formatSyncAge(session.LastSyncedAt))
}

func formatSyncAge(syncedAt time.Time) string {
	if syncedAt.IsZero() {
		return "from cache (not confirmed by the bank this run)"
	}
	return fmt.Sprintf("%s (%s ago)", syncedAt.Format(time.RFC3339), time.Since(syncedAt).Round(time.Second))
}
