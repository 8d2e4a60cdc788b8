package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"morningquest/internal/engine"
	"morningquest/internal/ui"
)

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the run, the time budget and the stamp card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := s.svc.Status(ctx, s.key)
			if err != nil {
				return err
			}
			printStatus(cmd, st, s.svc.Ledger().StampsPerReward)
			return nil
		},
	}
}

func printStatus(cmd *cobra.Command, st *engine.StatusResult, slots int) {
	out := cmd.OutOrStdout()
	child := st.State

	fmt.Fprintln(out, ui.Heading(ui.IconSunrise, child.Name))
	fmt.Fprintln(out, ui.LabelValue("Departure", child.DepartureTime))
	fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankBadge(child.StampCard.Rank)))
	fmt.Fprintln(out, ui.LabelValue("Stamps", ui.StampCard(child.StampCard.CurrentStamps, slots)))
	if st.RewardPending {
		fmt.Fprintln(out, ui.Gold.Render(ui.IconGift+" Reward waiting! Run `mq ack`."))
	} else {
		fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d more to the next reward", st.StampsToGo)))
	}
	fmt.Fprintln(out, "")

	if st.Run == nil {
		fmt.Fprintln(out, ui.H2.Render("No run in progress"))
		fmt.Fprintln(out, ui.LabelValue("Routine", fmt.Sprintf("%d tasks, %d min", len(child.Tasks), st.PlannedTotal)))
		fmt.Fprintln(out, ui.LabelValue("If you start now", "done by "+st.EstimatedDone.Format("15:04")))
		return
	}

	run := st.Run
	fmt.Fprintln(out, ui.H2.Render("Run started "+run.StartedAt.Format("15:04")))
	fmt.Fprintln(out, ui.LabelValue("Phase", ui.PhaseText(run.Phase)))
	fmt.Fprintln(out, ui.LabelValue("Slack", ui.BudgetText(run.Budget)))
	if run.Bonus {
		fmt.Fprintln(out, ui.BadgeBonus)
	}
	fmt.Fprintln(out, "")
	for _, tv := range run.Tasks {
		mark := ui.IconTodo
		switch {
		case tv.Completed:
			mark = ui.IconDone
		case tv.Active:
			mark = ui.IconActive
		}
		fmt.Fprintf(out, "%s %s %s %s %s\n",
			mark,
			ui.Muted.Render(tv.Task.ID),
			ui.TaskEmoji(tv.Task.Icon),
			ui.TaskTitle(tv.Task),
			ui.Muted.Render(fmt.Sprintf("%s / %s", ui.Clock(tv.ElapsedSeconds), ui.Clock(tv.Task.DurationMinutes*60))),
		)
	}
}
