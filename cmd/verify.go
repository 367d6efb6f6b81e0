package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the stored profile is valid and self-consistent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			u, err := s.repo.Load(cmd.Context(), s.profile, s.rules)
			if err != nil {
				return err
			}
			if err := u.Verify(); err != nil {
				return fmt.Errorf("profile %q: %w", s.profile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s has %d tasks, %d XP, level %d\n", s.profile, u.Len(), u.XP(), u.Level())
			return nil
		},
	}
}
