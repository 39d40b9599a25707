package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Validate and store a GitHub personal access token",
	Long: `Prompts for a GitHub personal access token, validates it against the
API, and stores it for future sessions. The token is read without echo
and never passed on the command line.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if config == nil || config.SessionService == nil {
		return errors.New("session service not configured")
	}

	cmd.Print("GitHub personal access token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return errors.New("no token provided")
	}

	session, err := config.SessionService.Login(cmd.Context(), token)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s\n", session.User.Login)
	return nil
}
