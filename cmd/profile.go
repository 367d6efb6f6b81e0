package cmd

import (
	"fmt"

	"github.com/abhisek/xptrack/internal/store"
	"github.com/abhisek/xptrack/internal/ui/theme"
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "profile",
		Short: "Show or manage profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintln(cmd.OutOrStdout(), s.profile)
			return nil
		},
	}
	c.AddCommand(newProfileListCmd())
	c.AddCommand(newProfileUseCmd())
	c.AddCommand(newProfileDeleteCmd())
	return c
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			profiles, err := s.repo.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, theme.Hint.Render("No profiles stored yet."))
				return nil
			}
			for _, p := range profiles {
				marker := "  "
				if p.Key == s.profile {
					marker = "* "
				}
				fmt.Fprintf(out, "%s%-24s %s\n", marker, p.Key, p.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newProfileUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the default profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.ValidateKey(args[0]); err != nil {
				return err
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			s.profile = args[0]
			if err := store.WriteLastProfile(s.cfg.DataDir, s.profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now using profile %q\n", s.profile)
			return nil
		},
	}
}

func newProfileDeleteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return fmt.Errorf("refusing to delete profile %q without --yes", args[0])
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", args[0])
			return nil
		},
	}
	c.Flags().Bool("yes", false, "Confirm deletion")
	return c
}
