package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nvallen/paywise-cli/internal/domain"
)

func newRewardsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "List the reward catalog and your points balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			products, err := app.catalog.Products(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reward points: %d\n\n", session.User.RewardPoints)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPOINTS\tCATEGORY\t")
			for _, p := range products {
				marker := ""
				if p.PointsRequired <= session.User.RewardPoints {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%d%s\t%s\t\n", p.ID, p.Name, p.PointsRequired, marker, p.Category)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\n* within your points balance")
			return nil
		},
	}
	return cmd
}

func newRedeemCmd(app *app) *cobra.Command {
	var approved bool

	cmd := &cobra.Command{
		Use:   "redeem <product-id>",
		Short: "Redeem a reward from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			product, err := app.catalog.ProductByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("unknown product %q; run 'pw rewards' to list the catalog", args[0])
			}

			if product.PointsRequired > session.User.RewardPoints {
				return fmt.Errorf("%s needs %d points, you have %d",
					product.Name, product.PointsRequired, session.User.RewardPoints)
			}

			action := fmt.Sprintf("redeem %s for %d points", product.Name, product.PointsRequired)
			if err := confirmBiometric(cmd, app.stdin, action, approved); err != nil {
				return err
			}

			if err := app.engine.RedeemReward(cmd.Context(), product); err != nil {
				if errors.Is(err, domain.ErrInsufficientPoints) {
					return fmt.Errorf("not enough points for %s", product.Name)
				}
				return err
			}

			updated := app.engine.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Redeemed %s. Remaining points: %d.\n",
				product.Name, updated.User.RewardPoints)
			return nil
		},
	}

	addApproveFlag(cmd, &approved)
	return cmd
}
