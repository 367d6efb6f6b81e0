package cmd

import (
	"fmt"

	"github.com/abhisek/xptrack/internal/ui/components"
	"github.com/spf13/cobra"
)

func newTasksCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tasks",
		Short: "List logged activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			u, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			tasks, awards := u.Tasks(), u.Awards()
			if limit > 0 && limit < len(tasks) {
				tasks = tasks[len(tasks)-limit:]
				awards = awards[len(awards)-limit:]
			}
			fmt.Fprint(cmd.OutOrStdout(), components.TaskList{Tasks: tasks, Awards: awards}.View())
			return nil
		},
	}
	c.Flags().IntP("limit", "n", recentCount, "Show only the newest N tasks (0 = all)")
	return c
}
