package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the case board",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("skip-intro")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("skip-intro", false, "Start at the home menu instead of the title screen")
}
