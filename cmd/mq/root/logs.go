package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"morningquest/internal/mission"
	"morningquest/internal/ui"
)

const recentLogLimit = 7

func newLogsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show past mornings and the planned vs actual chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, cleanup, err := openSession(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := s.svc.Logs(ctx, s.key)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Summary.Runs == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No mornings recorded yet."))
				return nil
			}

			sum := res.Summary
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Mornings"))
			fmt.Fprintln(out, ui.LabelValue("On time", fmt.Sprintf("%d of %d", sum.Successes, sum.Runs)))
			fmt.Fprintln(out, ui.LabelValue("Early bird", sum.Bonuses))
			fmt.Fprintln(out, ui.LabelValue("Average", fmt.Sprintf("planned %.0f min, actual %.0f min", sum.AvgPlannedMinutes, sum.AvgActualMinutes)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Recent"))
			for _, l := range mission.RecentLogs(res.Logs, recentLogLimit) {
				result := ui.Bad.Render("late")
				if l.IsSuccess {
					result = ui.Good.Render("on time")
				}
				if l.IsBonus {
					result += " " + ui.IconBonus
				}
				actual := "-"
				if l.ActualDurationSeconds != nil {
					actual = ui.Clock(*l.ActualDurationSeconds)
				}
				fmt.Fprintf(out, "- %s %s %s\n", l.Date, result,
					ui.Muted.Render(fmt.Sprintf("planned %s, actual %s", ui.Clock(l.TotalDurationSeconds), actual)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Planned vs actual"))
			printChart(cmd, res.Series)
			return nil
		},
	}
}

const chartWidth = 30

func printChart(cmd *cobra.Command, series []mission.ChartPoint) {
	peak := 0.0
	for _, p := range series {
		peak = max(peak, p.PlannedMinutes, p.ActualMinutes)
	}
	if peak == 0 {
		return
	}
	out := cmd.OutOrStdout()
	for _, p := range series {
		date := p.Date
		if len(date) >= 10 {
			date = date[5:10]
		}
		fmt.Fprintf(out, "%s %s %s\n", date, ui.Bar(p.PlannedMinutes/peak, chartWidth, ui.Muted), ui.Muted.Render(fmt.Sprintf("%.0f", p.PlannedMinutes)))
		if p.HasActual {
			style := ui.Bad
			if p.IsSuccess {
				style = ui.Good
			}
			fmt.Fprintf(out, "      %s %s\n", ui.Bar(p.ActualMinutes/peak, chartWidth, style), ui.Muted.Render(fmt.Sprintf("%.0f", p.ActualMinutes)))
		}
	}
}
