package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/ballot/lib/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		printResult(version.GetInfo())
	},
}
