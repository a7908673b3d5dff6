package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/application"
)

func newRegisterCmd(app *app) *cobra.Command {
	var (
		name  string
		email string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.engine.Register(cmd.Context(), application.RegisterCommand{
				Name:  name,
				Email: email,
				Phone: phone,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Your account is ready.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address (used as your account identifier)")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
