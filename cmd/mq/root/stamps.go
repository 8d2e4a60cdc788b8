package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"morningquest/internal/mission"
	"morningquest/internal/ui"
)

func newStampsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stamps",
		Short: "Show the stamp card, rank and medals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			card := st.StampCard
			ledger := s.svc.Ledger()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconStamp, "Stamp card"))
			fmt.Fprintln(out, ui.StampCard(card.CurrentStamps, ledger.StampsPerReward))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankBadge(card.Rank)))
			if !mission.IsMaxRank(card.Rank) {
				fmt.Fprintln(out, ui.LabelValue("Next", mission.RankTitle(card.Rank+1)))
			}
			fmt.Fprintln(out, ui.LabelValue("Rewards", card.TotalRewards))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconMedal+" Medals"))
			if len(card.Medals) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("None yet. Fill the card to earn one!"))
				return nil
			}
			for i := len(card.Medals) - 1; i >= 0; i-- {
				m := card.Medals[i]
				fmt.Fprintf(out, "- %s %s\n", m.Date, ui.Gold.Render(m.Title))
				if m.Comment != "" {
					fmt.Fprintf(out, "  %s\n", ui.Muted.Render(m.Comment))
				}
			}
			return nil
		},
	}
}
