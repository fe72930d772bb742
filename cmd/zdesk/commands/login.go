package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func newLoginCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with an API token",
		Long: `Verify API token credentials and save them to the configuration file.

Values missing from --subdomain/--endpoint, --email and --token are prompted for;
the token is read without echo when stdin is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := app.settings()
			settings.OAuthToken = ""

			reader := bufio.NewReader(cmd.InOrStdin())

			var err error

			if settings.Subdomain == "" && settings.Endpoint == "" {
				settings.Subdomain, err = prompt(cmd, reader, "Subdomain: ")
				if err != nil {
					return err
				}

				if settings.Subdomain == "" {
					return constants.ErrNoEndpointConfigured
				}
			}

			if settings.Email == "" {
				settings.Email, err = prompt(cmd, reader, "Email: ")
				if err != nil {
					return err
				}

				if settings.Email == "" {
					return constants.ErrEmailRequired
				}
			}

			if settings.Token == "" {
				settings.Token, err = readSecret(cmd, reader, "API token: ")
				if err != nil {
					return err
				}

				if settings.Token == "" {
					return constants.ErrTokenRequired
				}
			}

			client, err := app.clientFor(settings)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.LoginTimeout)
			defer cancel()

			_, err = client.Tickets().List(ctx, zendesk.NewPager().WithPerPage(1))
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			path, err := app.configPath()
			if err != nil {
				return err
			}

			stored, err := loadSettings(path)
			if err != nil {
				return err
			}

			stored.Subdomain = settings.Subdomain
			stored.Endpoint = settings.Endpoint
			stored.Email = settings.Email
			stored.Token = settings.Token
			stored.OAuthToken = ""

			err = saveSettings(path, stored)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s, credentials saved to %s\n", settings.Email, path)

			return nil
		},
	}
}

func prompt(cmd *cobra.Command, reader *bufio.Reader, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)

	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// readSecret reads without echo from a terminal and falls back to a plain line
// otherwise.
func readSecret(cmd *cobra.Command, reader *bufio.Reader, label string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label)

	file, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return readLine(reader)
	}

	secret, err := term.ReadPassword(int(file.Fd()))

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(string(secret)), nil
}
