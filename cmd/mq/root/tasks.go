package root

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"morningquest/internal/engine"
	"morningquest/internal/mission"
	"morningquest/internal/ui"
)

func newTasksCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show or edit the morning routine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTasks(cmd, flags)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the routine",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listTasks(cmd, flags)
			},
		},
		newTasksAddCmd(flags),
		newTasksRmCmd(flags),
		newTasksMoveCmd(flags),
		newTasksEditCmd(flags),
		newTasksResetCmd(flags),
	)
	return cmd
}

func listTasks(cmd *cobra.Command, flags *globalFlags) error {
	ctx := cmd.Context()
	s, cleanup, err := openSession(ctx, flags)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := s.svc.State(ctx, s.key)
	if err != nil {
		return err
	}
	printTasks(cmd, st.Tasks)
	return nil
}

func printTasks(cmd *cobra.Command, tasks []mission.Task) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Routine"))
	for _, t := range tasks {
		kind := ""
		switch t.Type {
		case mission.TaskTypeStart:
			kind = ui.Muted.Render("(wake-up)")
		case mission.TaskTypeEnd:
			kind = ui.Muted.Render("(departure)")
		}
		fmt.Fprintf(out, "- %s %s %s %s %s\n",
			ui.Muted.Render(t.ID), ui.TaskEmoji(t.Icon), t.Title,
			ui.Muted.Render(fmt.Sprintf("%d min", t.DurationMinutes)), kind)
	}
	fmt.Fprintln(out, ui.LabelValue("Total", fmt.Sprintf("%d min", mission.TotalPlannedMinutes(tasks))))
}

// editTasks runs one routine mutation and prints the resulting list.
func editTasks(cmd *cobra.Command, flags *globalFlags, fn func(s *session) (*mission.ChildState, error)) error {
	ctx := cmd.Context()
	s, cleanup, err := openSession(ctx, flags)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := fn(s)
	if err != nil {
		return err
	}
	printTasks(cmd, st.Tasks)
	return nil
}

func newTasksAddCmd(flags *globalFlags) *cobra.Command {
	var minutes int
	var icon string
	var color string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task before the departure task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTasks(cmd, flags, func(s *session) (*mission.ChildState, error) {
				return s.svc.AddTask(cmd.Context(), s.key, engine.AddTaskInput{
					Title:   args[0],
					Minutes: minutes,
					Icon:    icon,
					Color:   color,
				})
			})
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 5, "Planned minutes")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon (sun|utensils|toothbrush|shirt|backpack|book|gamepad|door-open|circle)")
	cmd.Flags().StringVar(&color, "color", "", "Color as #rrggbb")
	return cmd
}

func newTasksRmCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTasks(cmd, flags, func(s *session) (*mission.ChildState, error) {
				return s.svc.RemoveTask(cmd.Context(), s.key, args[0])
			})
		},
	}
}

func newTasksMoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <up|down>",
		Short: "Move a task one slot up or down",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir mission.Direction
			switch args[1] {
			case "up":
				dir = mission.Up
			case "down":
				dir = mission.Down
			default:
				return fmt.Errorf("direction must be up or down, got %q", args[1])
			}
			return editTasks(cmd, flags, func(s *session) (*mission.ChildState, error) {
				return s.svc.MoveTask(cmd.Context(), s.key, args[0], dir)
			})
		},
	}
}

func newTasksEditCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <title> <minutes>",
		Short: "Rename a task and change its planned minutes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.New("minutes must be an integer")
			}
			return editTasks(cmd, flags, func(s *session) (*mission.ChildState, error) {
				return s.svc.EditTask(cmd.Context(), s.key, args[0], args[1], minutes)
			})
		},
	}
}

func newTasksResetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in routine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTasks(cmd, flags, func(s *session) (*mission.ChildState, error) {
				return s.svc.ResetTasks(cmd.Context(), s.key)
			})
		},
	}
}
