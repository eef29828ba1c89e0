package cli

import (
	"context"
	"fmt"
	"io"

	"fittrack/domain"
	"fittrack/pkg/session"
	"fittrack/pkg/stats"

	"github.com/spf13/cobra"
)

var (
	profileAge    int
	profileWeight float64
	profileHeight float64
	profileGoal   string
	profileIntake int
	profileBurn   int
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your body metrics and goals",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(_ context.Context, s *session.Session) error {
			user, _ := s.User()
			printProfile(cmd.OutOrStdout(), user)
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; omitted flags keep their value",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			user, _ := s.User()
			updated, err := s.UpdateProfile(ctx, profileForm(cmd, user.Form()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.MessageSuccessUpdateProfile)
			printProfile(cmd.OutOrStdout(), updated)
			return nil
		})
	},
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Complete your profile: age, weight and goal are required",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			user, _ := s.User()
			updated, err := s.Onboard(ctx, profileForm(cmd, user.Form()))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All set, %s.\n", updated.Username)
			return nil
		})
	},
}

// profileForm overlays the flags the user actually passed onto current.
func profileForm(cmd *cobra.Command, current domain.ProfileForm) domain.ProfileForm {
	flags := cmd.Flags()
	if flags.Changed("age") {
		current.Age = profileAge
	}
	if flags.Changed("weight") {
		current.Weight = profileWeight
	}
	if flags.Changed("height") {
		current.Height = profileHeight
	}
	if flags.Changed("goal") {
		current.Goal = profileGoal
	}
	if flags.Changed("intake") {
		current.DailyCalorieIntake = profileIntake
	}
	if flags.Changed("burn") {
		current.DailyCalorieBurn = profileBurn
	}
	return current
}

func printProfile(w io.Writer, user domain.User) {
	fmt.Fprintf(w, "Username: %s\n", user.Username)
	fmt.Fprintf(w, "Email: %s\n", user.Email)
	fmt.Fprintf(w, "Age: %d\n", user.Age)
	fmt.Fprintf(w, "Weight: %.1f kg\n", user.Weight)
	if user.Height > 0 {
		fmt.Fprintf(w, "Height: %.1f cm\n", user.Height)
	} else {
		fmt.Fprintln(w, "Height: not set")
	}
	fmt.Fprintf(w, "Goal: %s\n", user.Goal)
	targets := stats.TargetsFor(user)
	fmt.Fprintf(w, "Daily intake goal: %d kcal\n", orDefault(targets.Intake, stats.DefaultIntakeGoal))
	fmt.Fprintf(w, "Daily burn goal: %d kcal\n", orDefault(targets.Burn, stats.DefaultBurnGoal))
	if bmi := stats.BMIFor(user); bmi != nil {
		fmt.Fprintf(w, "BMI: %.1f (%s)\n", bmi.Value, bmi.Status)
	}
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&profileAge, "age", 0, "Age in years (13-120)")
	cmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	cmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm (enables BMI)")
	cmd.Flags().StringVar(&profileGoal, "goal", "", "Goal: lose, maintain or gain")
	cmd.Flags().IntVar(&profileIntake, "intake", 0, "Daily calorie intake goal")
	cmd.Flags().IntVar(&profileBurn, "burn", 0, "Daily calorie burn goal")
}

func init() {
	rootCmd.AddCommand(profileCmd, onboardCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	addProfileFlags(profileSetCmd)
	addProfileFlags(onboardCmd)
}
