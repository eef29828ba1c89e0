package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:1337"

var (
	apiURL    string
	tokenFile string
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:           "fittrack",
	Short:         "fittrack logs meals and workouts against your FitTrack account",
	Long:          "fittrack is a terminal client for the FitTrack API: log food and activities, scan meal photos, and review your daily and weekly progress.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

func init() {
	defaultURL := os.Getenv("FITTRACK_API_URL")
	if defaultURL == "" {
		defaultURL = defaultAPIURL
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "FitTrack API base URL (env FITTRACK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", "", "Path of the saved session (default in the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation before deleting")
}
