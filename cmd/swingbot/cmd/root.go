package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swingbot",
	Short: "A paper-trading swing bot for crypto markets",
	Long: `Swingbot scans crypto markets on a fixed interval for swing setups
(EMA trend plus RSI pullback near a recent swing level), sizes a
hypothetical position under a capital-at-risk budget and tracks it
until its stop-loss or take-profit closes it.

No real orders are ever placed. Trades are journaled locally and
optionally announced over Telegram.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}
