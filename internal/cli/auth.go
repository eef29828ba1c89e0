package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginPassword  string
	signupUsername string
	signupEmail    string
	signupPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login <email-or-username>",
	Short: "Sign in and remember the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := loginPassword
		if password == "" {
			password = readLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: ")
		}
		ctx := commandContext(cmd)
		user, err := newSession().Login(ctx, args[0], password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Username)
		if !user.Onboarded() {
			fmt.Fprintln(cmd.OutOrStdout(), "Finish your profile with: fittrack onboard --age --weight --goal")
		}
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		user, err := newSession().Signup(ctx, signupUsername, signupEmail, signupPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! Next: fittrack onboard --age --weight --goal\n", user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		s := newSession()
		// A failed restore still leaves a token file worth clearing.
		_ = s.Restore(ctx)
		if err := s.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd)
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "Username")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (min 6 characters)")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
}
