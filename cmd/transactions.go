package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/domain"
)

func newTransactionsCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		cached bool
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Show your transaction history",
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
				return enc.Encode(session.Transactions)
			}

			if len(session.Transactions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions yet.")
				return nil
			}

			writeTransactions(cmd, session.Transactions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the history as JSON")
	cmd.Flags().BoolVar(&cached, "cached", false, "show the cached history without contacting the bank")

	return cmd
}

func writeTransactions(cmd *cobra.Command, transactions []domain.Transaction) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCOUNTERPARTY\tSTATUS")
	for _, transaction := range transactions {
		sign := "-"
		if transaction.Direction == domain.DirectionReceive {
			sign = "+"
		}
		fmt.Fprintf(w, "%s\t%s\t%s$%.2f\t%s\t%s\n",
			transaction.Date.Format("2006-01-02 15:04"),
			transaction.Direction,
			sign,
			transaction.Amount,
			transaction.Counterparty(),
			transaction.Status,
		)
	}
	_ = w.Flush()
}
