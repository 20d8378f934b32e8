package main

import (
	"github.com/spf13/cobra"
)

var restructureCmd = &cobra.Command{
	Use:   "restructure",
	Short: "Analyze the experiment under an alternate level layout",
	Long: `Restructure rebuilds the data tree under a different level ordering before
aggregating, e.g. --layout root,condition,compress groups every stance
directly under its condition and folds the remaining levels into composite
leaf names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, cfg, err := loadSession(cmd.Context(), cmd, nil)
		if err != nil {
			return err
		}

		layout, _ := cmd.Flags().GetStringSlice("layout")
		view, err := session.Restructure(layout)
		if err != nil {
			return err
		}
		return runStats(cmd, view, cfg)
	},
}

func init() {
	rootCmd.AddCommand(restructureCmd)
	addStatFlags(restructureCmd)
	restructureCmd.Flags().StringSlice("layout", []string{"root", "condition", "compress"},
		"New level layout, starting at root and ending with the composite leaf level")
}
