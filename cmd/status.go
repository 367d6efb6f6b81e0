package cmd

import (
	"fmt"

	"github.com/abhisek/xptrack/internal/ui/components"
	"github.com/abhisek/xptrack/internal/ui/theme"
	"github.com/spf13/cobra"
)

// recentCount matches the five-entry recent list of the desktop tracker.
const recentCount = 5

func newStatusCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, stats and chains",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	return c
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	u, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, components.StatusCard{Profile: s.profile, User: u}.View())

	if u.Len() > 0 {
		awards := u.Awards()
		recent := u.Recent(recentCount)
		fmt.Fprintln(out, theme.Hint.Render("Recent"))
		fmt.Fprint(out, components.TaskList{Tasks: recent, Awards: awards[len(awards)-len(recent):]}.View())
	}
	return nil
}
