package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pedarprobe version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("pedarprobe " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
