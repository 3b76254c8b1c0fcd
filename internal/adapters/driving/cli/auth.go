package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cajal/microns-kit/internal/connectors/github"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage credentials for remote services",
}

var authGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Store a GitHub personal access token",
	Long: `Prompts for a GitHub personal access token, validates it against
the API and stores it in the configuration file. Authenticated requests
get a much higher rate limit than anonymous ones.`,
	RunE: runAuthGitHub,
}

func init() {
	authCmd.AddCommand(authGitHubCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthGitHub(cmd *cobra.Command, _ []string) error {
	token, err := readToken(cmd)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("no token entered")
	}

	client := github.NewClient(cmd.Context(), token)
	if err := client.ValidateCredentials(cmd.Context()); err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}

	cfg, err := openConfig()
	if err != nil {
		return err
	}
	if err := cfg.Set("github.token", token); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	cmd.Println("GitHub token saved.")
	return nil
}

// readToken reads a token from stdin, hiding input when stdin is a
// terminal so the token does not end up in scrollback.
func readToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		cmd.Print("GitHub personal access token: ")
		raw, err := term.ReadPassword(fd)
		cmd.Println()
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var token string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &token); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(token), nil
}
