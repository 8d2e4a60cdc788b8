package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"morningquest/internal/ui"
)

func newNameCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "name <name>",
		Short: "Set the child's display name",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := s.svc.SetName(ctx, s.key, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Name", st.Name))
			return nil
		},
	}
}

func newDepartTimeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "depart-time <HH:MM>",
		Short: "Set the departure time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := s.svc.SetDepartureTime(ctx, s.key, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Departure", st.DepartureTime))
			return nil
		},
	}
}

func newProfilesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range cfg.Profiles {
				marker := "  "
				if p.Key == flags.profile {
					marker = "* "
				}
				fmt.Fprintf(out, "%s%s %s\n", marker, ui.Key.Render(p.Key), p.Name)
			}
			fmt.Fprintln(out, ui.Muted.Render("db: "+cfg.Database.Path))
			return nil
		},
	}
}
