// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scopus-search CLI and web server.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scopus-search/internal/logging"
	"github.com/pdiddy/scopus-search/internal/secrets"
	"github.com/pdiddy/scopus-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "SCOPUS_SEARCH"

var (
	// loadedSecrets holds credentials loaded from the secrets directory at startup.
	loadedSecrets secrets.Secrets

	// logger is built from log.level and log.format before any command runs.
	logger = zap.NewNop()
)

// rootCmd is the base command for the scopus-search CLI.
var rootCmd = &cobra.Command{
	Use:   "scopus-search",
	Short: "Search Scopus from the terminal or a small web front-end",
	Long: `scopus-search queries the Elsevier Scopus Search API for a phrase and shows
the matching articles with the remaining API quota.

Use "serve" for the web front-end and "search" for one-off queries. The API
key comes from scopus.api_key, SCOPUS_SEARCH_SCOPUS_API_KEY, API_KEY, or
.secrets/scopus-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}

		l, err := logging.New(viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return err
		}
		logger = l

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./scopus-search.yaml or ~/.config/scopus-search/config.yaml)")
	flags.String("secrets-dir", secrets.DefaultDir, "directory of secret files")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, console)")

	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scopus-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scopus-search"))
		}
	}

	configureViper(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// configureViper sets defaults and environment bindings on v.
func configureViper(v *viper.Viper) {
	v.SetDefault("scopus.endpoint", types.DefaultEndpoint)
	v.SetDefault("scopus.api_key", "")
	v.SetDefault("scopus.page_size", types.DefaultPageSize)
	v.SetDefault("scopus.timeout", "0s")
	v.SetDefault("scopus.user_agent", "scopus-search/"+version)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_secret", "")
	v.SetDefault("server.history_path", "")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept for existing .env files.
	_ = v.BindEnv("scopus.api_key", envPrefix+"_SCOPUS_API_KEY", "API_KEY")
	_ = v.BindEnv("server.session_secret", envPrefix+"_SERVER_SESSION_SECRET", "SECRET_KEY")
}

// loadConfig decodes v into an AppConfig, filling credentials from s when
// no other source set them. It does not validate.
func loadConfig(v *viper.Viper, s secrets.Secrets) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.Scopus.APIKey = strings.TrimSpace(cfg.Scopus.APIKey)
	if cfg.Scopus.APIKey == "" {
		cfg.Scopus.APIKey = s.Get(secrets.ScopusAPIKey)
	}
	if cfg.Server.SessionSecret == "" {
		cfg.Server.SessionSecret = s.Get(secrets.SessionSecret)
	}
	return cfg, nil
}

// appConfig loads the configuration for the running command.
func appConfig() (types.AppConfig, error) {
	return loadConfig(viper.GetViper(), loadedSecrets)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
