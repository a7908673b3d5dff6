package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pw",
		Short:         "Paywise (pw): terminal client for your Paywise bank account",
		Long:          "pw keeps a local snapshot of your Paywise account (balance, reward points, transaction history) in sync with the bank, and lets you send or receive money, redeem reward points, and file loan requests from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.engine.Close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newTransactionsCmd(app),
		newSendCmd(app),
		newReceiveCmd(app),
		newRewardsCmd(app),
		newRedeemCmd(app),
		newLoanCmd(app),
		newProfileCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
