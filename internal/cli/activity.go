package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"fittrack/domain"
	"fittrack/pkg/session"
	"fittrack/pkg/stats"

	"github.com/spf13/cobra"
)

var (
	activityName     string
	activityDuration int
	activityCalories int
	activityListDate string
	activityListAll  bool
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activity logs",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities for a day, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDate(activityListDate)
		if err != nil {
			return err
		}
		return withSession(cmd, func(_ context.Context, s *session.Session) error {
			entries := s.Store().Activity()
			if !activityListAll {
				entries = stats.EntriesOnDate(entries, stats.DayKey(day))
			}
			printActivity(cmd.OutOrStdout(), stats.Recent(entries))
			return nil
		})
	},
}

var activityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := domain.ActivityLogDraft{Name: activityName, Duration: activityDuration, Calories: activityCalories}
		return addActivity(cmd, draft)
	},
}

var activityQuickCmd = &cobra.Command{
	Use:   "quick <activity>",
	Short: "Log a quick-pick activity; calories follow from its burn rate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, ok := domain.FindQuickActivity(args[0])
		if !ok {
			return fmt.Errorf("unknown activity %q, see: fittrack activity picks", args[0])
		}
		draft := domain.NewQuickActivityDraft(q)
		if cmd.Flags().Changed("duration") {
			draft = draft.WithDuration(activityDuration)
		}
		return addActivity(cmd, draft)
	},
}

var activityPicksCmd = &cobra.Command{
	Use:   "picks",
	Short: "List quick-pick activities and their burn rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL_PER_MIN\tKCAL_30_MIN")
		for _, q := range domain.QuickActivities {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\n", q.Name, q.Rate, q.Rate*domain.QuickActivityDuration)
		}
		return nil
	},
}

var activityDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an activity log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			if err := s.Store().DeleteActivity(ctx, args[0], confirmer(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.MessageSuccessDeleteActivityLog)
			return nil
		})
	},
}

func addActivity(cmd *cobra.Command, draft domain.ActivityLogDraft) error {
	return withSession(cmd, func(ctx context.Context, s *session.Session) error {
		entry, err := s.Store().AddActivity(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %d min, %d kcal\n", entry.Name, entry.Duration, entry.Calories)
		summary := s.Summary(time.Now())
		fmt.Fprintf(cmd.OutOrStdout(), "Today: %d / %d kcal burned, %d active minutes\n", summary.Burned, summary.BurnGoal, summary.ActiveMinutes)
		return nil
	})
}

func printActivity(w io.Writer, entries []domain.ActivityLog) {
	fmt.Fprintln(w, "ID\tTIME\tMIN\tKCAL\tNAME")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", e.ID, e.CreatedAt.UTC().Format("2006-01-02 15:04"), e.Duration, e.Calories, e.Name)
	}
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.AddCommand(activityListCmd, activityAddCmd, activityQuickCmd, activityPicksCmd, activityDeleteCmd)

	activityListCmd.Flags().StringVar(&activityListDate, "date", "", "Date YYYY-MM-DD (default today, UTC)")
	activityListCmd.Flags().BoolVar(&activityListAll, "all", false, "List every day")

	activityAddCmd.Flags().StringVar(&activityName, "name", "", "Activity name")
	activityAddCmd.Flags().IntVar(&activityCalories, "calories", 0, "Calories burned (1-2000)")
	for _, c := range []*cobra.Command{activityAddCmd, activityQuickCmd} {
		c.Flags().IntVar(&activityDuration, "duration", domain.QuickActivityDuration, "Duration in minutes (1-300)")
	}
}
