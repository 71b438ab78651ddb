package cmd

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jobscout/jobscout/internal/filtering"
	"github.com/jobscout/jobscout/internal/logger"
	"github.com/jobscout/jobscout/internal/secrets"
	"github.com/jobscout/jobscout/internal/session"
	"github.com/jobscout/jobscout/internal/talenthub"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "jobscout"

	tokenEnv = "TALENTHUB_TOKEN"
)

type Config struct {
	APIURL      string              `mapstructure:"api-url"`
	UserAgent   string              `mapstructure:"user-agent"`
	TokenFile   string              `mapstructure:"token-file"`
	SessionFile string              `mapstructure:"session-file"`
	Filters     *filtering.Criteria `mapstructure:"filters"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout is a cli for browsing jobs and tracking applications on the TalentHub platform",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "TALENTHUB_TOKEN_FILE"); err != nil {
		log.Fatalf("binding TALENTHUB_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A .env file may carry TALENTHUB_TOKEN or TALENTHUB_TOKEN_FILE for
	// local development. A missing file is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicitly requested config file must parse. The default one is
	// optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	return l
}

// newClient resolves the platform token and builds an API client with any
// configured overrides applied.
func newClient(config *Config, l *zap.Logger) (*talenthub.Client, error) {
	token, err := resolveToken(config)
	if err != nil {
		return nil, err
	}

	client := talenthub.New(l, token)

	if config.APIURL != "" {
		client.APIURL = config.APIURL
	}
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return client, nil
}

func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "platform token",
		File: tokenFile,
		Env:  tokenEnv,
	})
}

// newSessionStore opens the local session store at the configured path, or
// the per-user default when none is set.
func newSessionStore(config *Config, l *zap.Logger) *session.Store {
	path := strings.TrimSpace(config.SessionFile)
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		path = filepath.Join(dir, app, "session.json")
	}

	return session.New(path, l)
}
