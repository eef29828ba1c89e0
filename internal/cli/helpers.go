package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fittrack/pkg/gateway"
	"fittrack/pkg/session"
	"fittrack/pkg/stats"
	"fittrack/pkg/store"

	"github.com/spf13/cobra"
)

func newSession() *session.Session {
	path := tokenFile
	if path == "" {
		path = session.DefaultTokenPath()
	}
	client := gateway.New(apiURL)
	return session.New(client, session.NewFileTokenStore(path), store.New(client))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// withSession restores the saved session and runs fn with it.
func withSession(cmd *cobra.Command, run func(ctx context.Context, s *session.Session) error) error {
	ctx := commandContext(cmd)
	s := newSession()
	if err := s.Restore(ctx); err != nil {
		return err
	}
	return run(ctx, s)
}

func confirmer(cmd *cobra.Command) store.Confirmer {
	if assumeYes {
		return store.AlwaysConfirm
	}
	reader := bufio.NewReader(cmd.InOrStdin())
	return store.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

func readLine(in io.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line)
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(stats.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return t.Add(12 * time.Hour), nil
}

func userMessage(err error) string {
	return gateway.Message(err)
}
