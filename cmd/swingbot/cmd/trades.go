package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/swingbot/journal"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List recorded paper trades",
	Long: `List the trade history from a SQLite journal.

Example:
  swingbot trades --db trades.db`,
	RunE: runTrades,
}

var tradesDBPath string

func init() {
	rootCmd.AddCommand(tradesCmd)

	tradesCmd.Flags().StringVar(&tradesDBPath, "db", "trades.db", "path to the SQLite journal")
}

func runTrades(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(tradesDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	trades, err := j.ListTrades()
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	if len(trades) == 0 {
		fmt.Println("no trades recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRADE ID\tSYMBOL\tSIDE\tSTATUS\tENTRY\tEXIT\tQTY\tP&L\tP&L %\tREASON")

	var total float64
	for _, t := range trades {
		exit := "-"
		pnl, pnlPct := "-", "-"
		if t.Status == "CLOSED" {
			exit = fmt.Sprintf("%.2f", t.ExitPrice)
			pnl = fmt.Sprintf("%.2f", t.PnL)
			pnlPct = fmt.Sprintf("%.2f", t.PnLPercent)
			total += t.PnL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\t%.6f\t%s\t%s\t%s\n",
			t.TradeID, t.Symbol, t.Side, t.Status,
			t.EntryPrice, exit, t.Quantity, pnl, pnlPct, t.ExitReason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d trades, realized P&L: $%.2f\n", len(trades), total)
	return nil
}
