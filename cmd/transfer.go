package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/application"
	"github.com/nvallen/paywise-cli/internal/domain"
)

func newSendCmd(app *app) *cobra.Command {
	var approved bool

	cmd := &cobra.Command{
		Use:   "send <recipient-email> <amount>",
		Short: "Send money to another account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if amount > session.User.Balance {
				return fmt.Errorf("amount $%.2f exceeds your balance of $%.2f", amount, session.User.Balance)
			}

			action := fmt.Sprintf("send $%.2f to %s", amount, args[0])
			if err := confirmBiometric(cmd, app.stdin, action, approved); err != nil {
				return err
			}

			err = app.engine.SubmitTransaction(cmd.Context(), application.TransferCommand{
				Direction:    domain.DirectionSend,
				Amount:       amount,
				Counterparty: args[0],
			})
			if err != nil {
				return err
			}

			updated := app.engine.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Sent $%.2f to %s. New balance: $%.2f.\n",
				amount, args[0], updated.User.Balance)
			return nil
		},
	}

	addApproveFlag(cmd, &approved)
	return cmd
}

func newReceiveCmd(app *app) *cobra.Command {
	var approved bool

	cmd := &cobra.Command{
		Use:   "receive <amount>",
		Short: "Record an incoming deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(cmd, app); err != nil {
				return err
			}

			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			action := fmt.Sprintf("deposit $%.2f", amount)
			if err := confirmBiometric(cmd, app.stdin, action, approved); err != nil {
				return err
			}

			err = app.engine.SubmitTransaction(cmd.Context(), application.TransferCommand{
				Direction: domain.DirectionReceive,
				Amount:    amount,
			})
			if err != nil {
				return err
			}

			updated := app.engine.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Deposited $%.2f. New balance: $%.2f.\n",
				amount, updated.User.Balance)
			return nil
		},
	}

	addApproveFlag(cmd, &approved)
	return cmd
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}
