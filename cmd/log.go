package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/xptrack/internal/tracker"
	"github.com/abhisek/xptrack/internal/ui/theme"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "log <description>",
		Aliases: []string{"add"},
		Short:   "Log a completed activity",
		Example: `  xptrack log "Home row drills" -c Typing -s Tech -m 20
  xptrack log "Park run" -c Exercise -s Body -m 30 --outside --date 2024-03-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLog,
	}
	c.Flags().StringP("category", "c", "General", "Activity category")
	c.Flags().StringP("stat", "s", "", "Stat to train: "+statNames())
	c.Flags().IntP("minutes", "m", 0, "Duration in minutes")
	c.Flags().StringP("date", "d", "", "Date as YYYY-MM-DD (default: today)")
	c.Flags().Bool("outside", false, "Done outdoors (double XP)")
	_ = c.MarkFlagRequired("stat")
	_ = c.MarkFlagRequired("minutes")
	return c
}

func runLog(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	statName, _ := cmd.Flags().GetString("stat")
	minutes, _ := cmd.Flags().GetInt("minutes")
	dateStr, _ := cmd.Flags().GetString("date")
	outside, _ := cmd.Flags().GetBool("outside")

	stat, ok := tracker.ParseStat(statName)
	if !ok {
		return &tracker.ValidationError{
			Field:  "stat",
			Reason: fmt.Sprintf("unknown stat %q (want one of %s)", statName, statNames()),
		}
	}

	date := tracker.DateOf(time.Now())
	if dateStr != "" {
		d, err := tracker.ParseDate(dateStr)
		if err != nil {
			return err
		}
		date = d
	}

	task, err := tracker.NewTask(tracker.Task{
		Name:     strings.Join(args, " "),
		Category: category,
		Stat:     stat,
		Duration: minutes,
		Date:     date,
		Outside:  outside,
	})
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	u, err := s.load(ctx)
	if err != nil {
		return err
	}

	levelBefore := u.Level()
	mult := u.NextMultiplier(task.Category)
	award, err := u.AddTask(task)
	if err != nil {
		return err
	}
	if err := s.save(ctx, u); err != nil {
		return err
	}
	s.logger.Info("task logged", "category", task.Category, "stat", task.Stat, "award", award)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Gain.Render(fmt.Sprintf("+%d XP", award))+"  "+theme.Body.Render(task.Name))
	if mult > 1 {
		fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("%s chain ×%d", task.Category, mult)))
	}
	if u.Level() > levelBefore {
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Level up! Now level %d", u.Level())))
	}
	fmt.Fprintln(out, theme.Body.Render(fmt.Sprintf("%s: %d XP · Level %d", s.profile, u.XP(), u.Level())))
	return nil
}

func statNames() string {
	var names []string
	for _, st := range tracker.AllStats() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
