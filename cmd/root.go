package cmd

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xptrack",
		Short: "Gamified habit tracker",
		Long: "xptrack — log timed activities, earn XP toward six character stats, " +
			"and build chains in streak categories for up to triple XP.",
		SilenceUsage: true,
		RunE:         runStatus,
	}

	root.PersistentFlags().String("config", "", "Path to YAML config file (overrides XPTRACK_CONFIG)")
	root.PersistentFlags().StringP("profile", "p", "", "Profile to use (default: last used profile)")

	root.AddCommand(newLogCmd())
	root.AddCommand(newUndoCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newTasksCmd())
	root.AddCommand(newProfileCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
