package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"fittrack/pkg/gateway"
	"fittrack/pkg/session"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download every log as an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := exportOut
		if path == "" {
			path = fmt.Sprintf("fittrack-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
		}
		return withSession(cmd, func(ctx context.Context, s *session.Session) error {
			file, err := os.Create(path)
			if err != nil {
				return err
			}
			defer file.Close()

			client := gateway.New(apiURL, gateway.WithToken(currentToken(s)))
			if err := client.Export(ctx, file); err != nil {
				_ = os.Remove(path)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default fittrack-YYYY-MM-DD.xlsx)")
}
