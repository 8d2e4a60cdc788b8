package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"morningquest/internal/ui"
)

func newAckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "ack",
		Aliases: []string{"reward"},
		Short:   "Collect the reward for a full stamp card",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := s.svc.AcknowledgeReward(ctx, s.key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "New medal!"))
			fmt.Fprintln(out, ui.Gold.Render(ui.IconMedal+" "+res.Medal.Title))
			fmt.Fprintln(out, res.Medal.Comment)
			if res.GradeUp {
				fmt.Fprintln(out, ui.BadgeGradeUp)
			}
			if res.MaxRank {
				fmt.Fprintln(out, ui.Gold.Render("Top of the ladder!"))
			}
			fmt.Fprintln(out, ui.LabelValue("Rank", fmt.Sprintf("%s -> %s", ui.RankBadge(res.RankBefore), ui.RankBadge(res.RankAfter))))
			if res.CarriedStamps > 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d stamp(s) carried to the new card", res.CarriedStamps)))
			}
			return nil
		},
	}
}
