package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zdclient"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

const (
	configDirName  = ".zdesk"
	configFileName = "config.yml"
	envPrefix      = "ZENDESK"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Date    string `json:"date"    yaml:"date"`
}

// App holds the state shared by all commands of one invocation.
type App struct {
	viper      *viper.Viper
	configFile string
	envFile    string
	logger     *zap.Logger
	info       BuildInfo
}

// NewRootCommand creates the zdesk command tree. Every call gets its own viper
// instance, so trees can be built and executed side by side.
func NewRootCommand(info BuildInfo) *cobra.Command {
	app := &App{
		viper:  viper.New(),
		logger: zap.NewNop(),
		info:   info,
	}

	cmd := &cobra.Command{
		Use:   "zdesk",
		Short: "Helpdesk API CLI",
		Long: `A command-line interface for a Zendesk-compatible helpdesk API.

It manages tickets, deleted tickets, groups, satisfaction ratings, organization
memberships and ticket audits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger.Sync()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&app.configFile, "config", "c", "", "config file (default is $HOME/.zdesk/config.yml)")
	flags.StringVar(&app.envFile, "env-file", ".env", "dotenv file loaded into the environment")
	flags.String("endpoint", "", "API endpoint URL")
	flags.StringP("subdomain", "s", "", "account subdomain")
	flags.StringP("email", "e", "", "agent email used with --token")
	flags.StringP("token", "t", "", "API token")
	flags.String("oauth-token", "", "OAuth access token")
	flags.StringP("output", "o", constants.OutputFormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")

	for _, name := range []string{"endpoint", "subdomain", "email", "token", "output", "verbose"} {
		_ = app.viper.BindPFlag(name, flags.Lookup(name))
	}

	_ = app.viper.BindPFlag("oauth_token", flags.Lookup("oauth-token"))

	cmd.AddCommand(newVersionCommand(app))
	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newConfigCommand(app))
	cmd.AddCommand(newTicketsCommand(app))
	cmd.AddCommand(newDeletedTicketsCommand(app))
	cmd.AddCommand(newGroupsCommand(app))
	cmd.AddCommand(newSatisfactionRatingsCommand(app))
	cmd.AddCommand(newOrgMembershipsCommand(app))
	cmd.AddCommand(newAuditsCommand(app))

	return cmd
}

func (a *App) initConfig() error {
	if a.envFile != "" {
		err := godotenv.Load(a.envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", a.envFile, err)
		}
	}

	path, err := a.configPath()
	if err != nil {
		return err
	}

	a.viper.SetConfigFile(path)
	a.viper.SetEnvPrefix(envPrefix)
	a.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.viper.AutomaticEnv()

	err = a.viper.ReadInConfig()
	if err != nil && !isMissingConfig(err) {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	logger, err := newLogger(a.viper.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	a.logger = logger
	a.logger.Debug("configuration loaded", zap.String("config", path))

	return nil
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// configPath returns the --config value or $HOME/.zdesk/config.yml.
func (a *App) configPath() (string, error) {
	if a.configFile != "" {
		return a.configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName, configFileName), nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}

// settings returns the effective settings: flags, then environment, then config file.
func (a *App) settings() Settings {
	return Settings{
		Subdomain:  a.viper.GetString("subdomain"),
		Endpoint:   a.viper.GetString("endpoint"),
		Email:      a.viper.GetString("email"),
		Token:      a.viper.GetString("token"),
		OAuthToken: a.viper.GetString("oauth_token"),
		Output:     a.viper.GetString("output"),
	}
}

func (a *App) outputFormat() string {
	return a.viper.GetString("output")
}

func (a *App) client() (zendesk.Client, error) {
	return a.clientFor(a.settings())
}

func (a *App) clientFor(settings Settings) (zendesk.Client, error) {
	if settings.Subdomain == "" && settings.Endpoint == "" {
		return nil, constants.ErrNoEndpointConfigured
	}

	client, err := zdclient.New(&zendesk.Config{
		Subdomain:  settings.Subdomain,
		Endpoint:   settings.Endpoint,
		Email:      settings.Email,
		APIToken:   settings.Token,
		OAuthToken: settings.OAuthToken,
		Debug:      a.viper.GetBool("verbose"),
		Logger:     zendesk.NewZapLogger(a.logger),
		UserAgent:  "zdesk/" + a.info.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
