package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hacross/strategy"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hacross (engine version %s)\n", strategy.EngineVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
