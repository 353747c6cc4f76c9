package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hacross",
	Short: "SMA Heikin-Ashi crossover strategy runner",
	Long: `hacross runs the SMA Heikin-Ashi crossover strategy over a day of
candle data using an in-process paper broker.

Each closed candle drives the strategy's hook sequence (exit selection, exit
execution, entry selection, entry execution); placed orders and exits are
journaled to SQLite.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
