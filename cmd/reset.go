package cmd

import (
	"fmt"

	"github.com/abhisek/xptrack/internal/tracker"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reset",
		Short: "Clear every logged activity of the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("refusing to reset profile %q without --yes", s.profile)
			}
			if err := s.save(cmd.Context(), tracker.NewUser(s.rules)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q reset.\n", s.profile)
			return nil
		},
	}
	c.Flags().Bool("yes", false, "Confirm the reset")
	return c
}
