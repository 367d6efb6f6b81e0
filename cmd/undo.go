package cmd

import (
	"fmt"

	"github.com/abhisek/xptrack/internal/ui/theme"
	"github.com/spf13/cobra"
)

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Remove the most recently logged activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			out := cmd.OutOrStdout()
			last := u.Recent(1)
			awards := u.Awards()
			if !u.Undo() {
				fmt.Fprintln(out, theme.Hint.Render("Nothing to undo."))
				return nil
			}
			if err := s.save(ctx, u); err != nil {
				return err
			}

			award := awards[len(awards)-1]
			fmt.Fprintln(out, theme.Warn.Render(fmt.Sprintf("-%d XP", award))+"  "+theme.Body.Render("Undid "+last[0].Name))
			fmt.Fprintln(out, theme.Body.Render(fmt.Sprintf("%s: %d XP · Level %d", s.profile, u.XP(), u.Level())))
			return nil
		},
	}
}
