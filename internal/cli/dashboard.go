package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fittrack/domain"
	"fittrack/pkg/gateway"
	"fittrack/pkg/session"
	"fittrack/pkg/stats"

	"github.com/spf13/cobra"
)

var (
	dashboardDate   string
	dashboardRemote bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show daily totals, the weekly chart, streak and BMI",
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := parseDate(dashboardDate)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			var board domain.DashboardResponse
			if dashboardRemote {
				client := gateway.New(apiURL, gateway.WithToken(currentToken(s)))
				board, err = client.Dashboard(ctx, dashboardDate)
				if err != nil {
					return err
				}
			} else {
				board = s.Dashboard(now)
			}
			printDashboard(cmd.OutOrStdout(), board)
			return nil
		})
	},
}

func currentToken(s *session.Session) string {
	user, _ := s.User()
	return user.Token
}

func printDashboard(w io.Writer, board domain.DashboardResponse) {
	sum := board.Summary
	fmt.Fprintf(w, "Date: %s\n", sum.Date)
	fmt.Fprintf(w, "Consumed: %d / %d kcal (%d%%), %s\n", sum.Consumed, sum.IntakeGoal, sum.ConsumedPct, stats.RemainingLabel(sum.Remaining))
	fmt.Fprintf(w, "Burned: %d / %d kcal (%d%%)\n", sum.Burned, sum.BurnGoal, sum.BurnedPct)
	fmt.Fprintf(w, "Active minutes: %d (%+d%% vs yesterday), intensity %d kcal/min\n", sum.ActiveMinutes, sum.ActiveMinutesChangePct, sum.IntensityScore)
	fmt.Fprintf(w, "Macros (estimated): P %dg | C %dg | F %dg\n", sum.Macros.Protein, sum.Macros.Carbs, sum.Macros.Fats)
	fmt.Fprintf(w, "Streak: %d day(s), active %d/%d days this week (%d%% of goal)\n",
		board.StreakDays, board.ActiveDays, stats.WeekLength, board.WeeklyGoalPercent)
	if board.BMI != nil {
		fmt.Fprintf(w, "BMI: %.1f (%s)\n", board.BMI.Value, board.BMI.Status)
	}

	fmt.Fprintln(w, "\nDAY\tDATE\tINTAKE\tBURN")
	for _, b := range board.Week {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", b.Day, b.Date, b.Intake, b.Burn, bar(b.Intake, sum.IntakeGoal))
	}
}

func bar(value, goal int) string {
	const width = 20
	if goal <= 0 || value <= 0 {
		return ""
	}
	n := value * width / goal
	if n > width {
		n = width
	}
	return strings.Repeat("#", n)
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardDate, "date", "", "Date YYYY-MM-DD (default today, UTC)")
	dashboardCmd.Flags().BoolVar(&dashboardRemote, "remote", false, "Ask the server to compute the dashboard")
}
