package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"morningquest/internal/ui"
)

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	var apply bool
	var history bool

	cmd := &cobra.Command{
		Use:   "generate <description>",
		Short: "Ask the schedule generator for a routine",
		Long:  "Describes the morning in free text and asks the configured OpenAI-compatible endpoint for a routine. Nothing changes unless --apply is given.",
		Args: func(cmd *cobra.Command, args []string) error {
			if history {
				return nil
			}
			if len(args) == 0 {
				return errors.New("description is required")
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

			out := cmd.OutOrStdout()
			if history {
				gens, err := s.svc.Generations(ctx, s.key, 10)
				if err != nil {
					return err
				}
				for _, g := range gens {
					mark := ui.Good.Render("ok")
					if !g.OK {
						mark = ui.Bad.Render("failed")
					}
					fmt.Fprintf(out, "- %s %s %s\n", g.CreatedAt.Format("2006-01-02 15:04"), mark, ui.Muted.Render(g.Prompt))
				}
				return nil
			}

			res, err := s.svc.GenerateSchedule(ctx, s.key, strings.Join(args, " "), apply)
			if err != nil {
				return err
			}
			printTasks(cmd, res.Tasks)
			if apply {
				fmt.Fprintln(out, ui.Good.Render("Routine replaced."))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("Preview only, rerun with --apply to use it."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Replace the routine with the result")
	cmd.Flags().BoolVar(&history, "history", false, "List recent generator calls instead")
	return cmd
}
