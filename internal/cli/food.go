package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fittrack/domain"
	"fittrack/pkg/session"
	"fittrack/pkg/stats"

	"github.com/spf13/cobra"
)

var (
	foodName     string
	foodCalories int
	foodMeal     string
	foodListDate string
	foodListAll  bool
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage food logs",
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List food logs for a day, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDate(foodListDate)
		if err != nil {
			return err
		}
		return withSession(cmd, func(_ context.Context, s *session.Session) error {
			entries := s.Store().Food()
			if !foodListAll {
				entries = stats.EntriesOnDate(entries, stats.DayKey(day))
			}
			printFood(cmd.OutOrStdout(), stats.Recent(entries))
			return nil
		})
	},
}

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		meal := strings.ToLower(strings.TrimSpace(foodMeal))
		if meal == "" {
			meal = domain.MealTypeAt(time.Now())
		}
		draft := domain.FoodLogDraft{Name: foodName, Calories: foodCalories, MealType: meal}
		return addFood(cmd, draft)
	},
}

var foodQuickCmd = &cobra.Command{
	Use:       "quick <breakfast|lunch|dinner|snack>",
	Short:     "Quick add to a meal category",
	Args:      cobra.ExactArgs(1),
	ValidArgs: domain.MealTypes,
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := domain.NewQuickFoodDraft(strings.ToLower(args[0]))
		draft.Name = foodName
		draft.Calories = foodCalories
		return addFood(cmd, draft)
	},
}

var foodScanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Estimate a meal from a photo and log it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			entry, err := s.Store().AddFoodFromImage(ctx, filepath.Base(args[0]), file, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Detected %s, %d kcal, logged as %s\n", entry.Name, entry.Calories, entry.MealType)
			printRemaining(cmd.OutOrStdout(), s)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			if err := s.Store().DeleteFood(ctx, args[0], confirmer(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.MessageSuccessDeleteFoodLog)
			return nil
		})
	},
}

func addFood(cmd *cobra.Command, draft domain.FoodLogDraft) error {
	return withSession(cmd, func(ctx context.Context, s *session.Session) error {
		entry, err := s.Store().AddFood(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d kcal) to %s\n", entry.Name, entry.Calories, entry.MealType)
		printRemaining(cmd.OutOrStdout(), s)
		return nil
	})
}

func printFood(w io.Writer, entries []domain.FoodLog) {
	fmt.Fprintln(w, "ID\tTIME\tMEAL\tKCAL\tNAME")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.ID, e.CreatedAt.UTC().Format("2006-01-02 15:04"), e.MealType, e.Calories, e.Name)
	}
}

func printRemaining(w io.Writer, s *session.Session) {
	summary := s.Summary(time.Now())
	fmt.Fprintf(w, "Today: %d / %d kcal, %s\n", summary.Consumed, summary.IntakeGoal, stats.RemainingLabel(summary.Remaining))
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodListCmd, foodAddCmd, foodQuickCmd, foodScanCmd, foodDeleteCmd)

	foodListCmd.Flags().StringVar(&foodListDate, "date", "", "Date YYYY-MM-DD (default today, UTC)")
	foodListCmd.Flags().BoolVar(&foodListAll, "all", false, "List every day")

	for _, c := range []*cobra.Command{foodAddCmd, foodQuickCmd} {
		c.Flags().StringVar(&foodName, "name", "", "Food name")
		c.Flags().IntVar(&foodCalories, "calories", 0, "Calories (kcal)")
	}
	foodAddCmd.Flags().StringVar(&foodMeal, "meal", "", "Meal type: breakfast, lunch, dinner or snack (default from the time of day)")
}
