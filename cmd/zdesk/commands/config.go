package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
)

// Settings is the persisted CLI configuration.
type Settings struct {
	Subdomain  string `json:"subdomain,omitempty"   yaml:"subdomain,omitempty"`
	Endpoint   string `json:"endpoint,omitempty"    yaml:"endpoint,omitempty"`
	Email      string `json:"email,omitempty"       yaml:"email,omitempty"`
	Token      string `json:"token,omitempty"       yaml:"token,omitempty"`
	OAuthToken string `json:"oauth_token,omitempty" yaml:"oauth_token,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`
}

// settingSetters maps the keys accepted by 'config set' to their fields.
var settingSetters = map[string]func(*Settings, string){
	"subdomain":   func(s *Settings, v string) { s.Subdomain = v },
	"endpoint":    func(s *Settings, v string) { s.Endpoint = v },
	"email":       func(s *Settings, v string) { s.Email = v },
	"token":       func(s *Settings, v string) { s.Token = v },
	"oauth_token": func(s *Settings, v string) { s.OAuthToken = v },
	"output":      func(s *Settings, v string) { s.Output = v },
}

// masked returns a copy safe for display.
func (s Settings) masked() Settings {
	s.Token = mask(s.Token)
	s.OAuthToken = mask(s.OAuthToken)

	return s
}

func mask(secret string) string {
	const visible = 4

	if secret == "" {
		return ""
	}

	if len(secret) <= visible {
		return "****"
	}

	return "****" + secret[len(secret)-visible:]
}

func loadSettings(path string) (*Settings, error) {
	settings := &Settings{}

	// path comes from --config or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return settings, nil
}

func saveSettings(path string, settings *Settings) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the zdesk configuration file",
	}

	cmd.AddCommand(newConfigShowCommand(app))
	cmd.AddCommand(newConfigSetCommand(app))

	return cmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.configPath()
			if err != nil {
				return err
			}

			settings := app.settings().masked()

			done, err := writeStructured(cmd.OutOrStdout(), app.outputFormat(), settings)
			if done || err != nil {
				return err
			}

			return displaySettingsTable(cmd.OutOrStdout(), path, settings)
		},
	}
}

func displaySettingsTable(w io.Writer, path string, settings Settings) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Config File", path})
	_ = table.Append([]string{"Subdomain", formatValue(settings.Subdomain)})
	_ = table.Append([]string{"Endpoint", formatValue(settings.Endpoint)})
	_ = table.Append([]string{"Email", formatValue(settings.Email)})
	_ = table.Append([]string{"Token", formatValue(settings.Token)})
	_ = table.Append([]string{"OAuth Token", formatValue(settings.OAuthToken)})
	_ = table.Append([]string{"Output", formatValue(settings.Output)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newConfigSetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a value in the configuration file. Keys: " + settingKeys(),
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			setter, ok := settingSetters[key]
			if !ok {
				return fmt.Errorf("%w: %q (valid keys: %s)", constants.ErrUnknownConfigKey, key, settingKeys())
			}

			if key == "output" {
				_, err := writeStructured(io.Discard, value, nil)
				if err != nil {
					return err
				}
			}

			path, err := app.configPath()
			if err != nil {
				return err
			}

			settings, err := loadSettings(path)
			if err != nil {
				return err
			}

			setter(settings, value)

			err = saveSettings(path, settings)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, path)

			return nil
		},
	}
}

func settingKeys() string {
	keys := make([]string, 0, len(settingSetters))
	for key := range settingSetters {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return fmt.Sprint(keys)
}
