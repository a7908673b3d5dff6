package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/application"
)

func newLoanCmd(app *app) *cobra.Command {
	var (
		amount   float64
		duration int
		purpose  string
		approved bool
	)

	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Submit a loan application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(cmd, app); err != nil {
				return err
			}

			action := fmt.Sprintf("apply for a $%.2f loan over %d months", amount, duration)
			if err := confirmBiometric(cmd, app.stdin, action, approved); err != nil {
				return err
			}

			err := app.engine.SubmitLoanRequest(cmd.Context(), application.LoanCommand{
				Amount:         amount,
				DurationMonths: duration,
				Purpose:        purpose,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Loan application submitted. The bank will review it and reach out.")
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "loan amount in dollars")
	cmd.Flags().IntVar(&duration, "duration", 0, "repayment period in months")
	cmd.Flags().StringVar(&purpose, "purpose", "", "what the loan is for")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("purpose")
	addApproveFlag(cmd, &approved)
	return cmd
}
