package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/application"
)

func newProfileCmd(app *app) *cobra.Command {
	var (
		name  string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Long:  "Without flags, prints the profile on record. With --name or --phone, updates those fields; omitted fields keep their current value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			if name == "" && phone == "" {
				user := session.User
				fmt.Fprintf(cmd.OutOrStdout(), "Name:  %s\nEmail: %s\nPhone: %s\n",
					user.Name, user.Email, user.Phone)
				return nil
			}

			err = app.engine.UpdateProfile(cmd.Context(), application.ProfileUpdateCommand{
				Name:  name,
				Phone: phone,
			})
			if err != nil {
				return err
			}

			updated := app.engine.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated.\nName:  %s\nPhone: %s\n",
				updated.User.Name, updated.User.Phone)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number")
	return cmd
}
