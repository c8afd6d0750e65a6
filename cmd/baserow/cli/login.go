package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with email and password",
		Long:  "Exchange email and password for a database token and a JWT pair, and print the database token for use with --token.",
		Example: `  baserow login --email user@example.com
  BASEROW_PASSWORD=secret baserow login --email user@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runLogin(cmd *cobra.Command, email, password string) error {
	if password == "" {
		password = viper.GetString("password")
	}
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)
	}

	viper.Set("email", email)
	viper.Set("password", password)

	authed, err := newClient().TokenAuth(cmd.Context())
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := authed.User()
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", user.Username, user.FirstName)
	fmt.Fprintf(cmd.OutOrStdout(), "Database token: %s\n", authed.Config().DatabaseToken)
	return nil
}
