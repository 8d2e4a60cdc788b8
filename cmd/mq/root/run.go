package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"morningquest/internal/ui"
)

func newStartCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start this morning's run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := s.svc.StartRun(ctx, s.key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSunrise, "Good morning!"))
			fmt.Fprintln(out, ui.LabelValue("Phase", ui.PhaseText(res.Phase)))
			fmt.Fprintln(out, ui.LabelValue("Slack", ui.BudgetText(res.Budget)))
			fmt.Fprintln(out, ui.LabelValue("Done by", res.EstimatedDone.Format("15:04")))
			return nil
		},
	}
}

func newDoCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "do [task-id]",
		Short: "Complete a task (defaults to the active one)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one task id")
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

			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				st, err := s.svc.Status(ctx, s.key)
				if err != nil {
					return err
				}
				if st.Run == nil || st.Run.ActiveTask == nil {
					return errors.New("nothing to complete")
				}
				id = st.Run.ActiveTask.ID
			}

			res, err := s.svc.CompleteTask(ctx, s.key, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.AlreadyCompleted {
				fmt.Fprintln(out, ui.Muted.Render("Already done."))
				return nil
			}
			fmt.Fprintf(out, "%s Done in %s\n", ui.IconDone, ui.Clock(res.SecondsCharged))
			if res.BonusEarned {
				fmt.Fprintln(out, ui.BadgeBonus)
			}
			fmt.Fprintln(out, ui.LabelValue("Phase", ui.PhaseText(res.PhaseAfter)))
			fmt.Fprintln(out, ui.LabelValue("Slack", ui.BudgetText(res.Budget)))
			return nil
		},
	}
}

func newDepartCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "depart",
		Short: "Leave the house and close the run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := s.svc.Depart(ctx, s.key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !res.Outcome.IsSuccess {
				fmt.Fprintln(out, ui.Warn.Render("Departed late. No stamp today, try again tomorrow!"))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s On time! +%d stamp(s)", ui.IconStamp, res.Stamps.StampsAdded)))
			if res.Outcome.IsBonus {
				fmt.Fprintln(out, ui.BadgeBonus)
			}
			fmt.Fprintln(out, ui.LabelValue("Stamps", ui.StampCard(res.Stamps.StampsAfter, s.svc.Ledger().StampsPerReward)))
			if res.RewardPending {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconGift+" Card full! Run `mq ack` to collect the reward."))
			}
			return nil
		},
	}
}

func newAbandonCmd(flags *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "abandon",
		Short: "Throw away the current run without recording it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("abandoning discards this morning, pass --yes to confirm")
			}
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.svc.AbandonRun(ctx, s.key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Run abandoned. Nothing was recorded."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm")
	return cmd
}
