// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the padelf CLI: load and validate the
// dataset catalog, print it, and build the dashboard index.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/padelf-catalog/internal/catalog"
	"github.com/pdiddy/padelf-catalog/internal/secrets"
	"github.com/pdiddy/padelf-catalog/internal/source"
	"github.com/pdiddy/padelf-catalog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Store

	logger = zap.NewNop()
)

// secretDefault returns value if set, otherwise the named secret.
func secretDefault(value, key string) string {
	if value != "" {
		return value
	}
	return loadedSecrets.Get(key)
}

var rootCmd = &cobra.Command{
	Use:   "padelf",
	Short: "Load and validate the PADELF dataset catalog",
	Long: `padelf loads the electric load forecasting dataset catalog (datasets.yaml)
from a local file or a remote URL, validates every entry, and prints or
indexes the result.

The source is chosen in this order: --path, --url, PADELF_METADATA_PATH,
PADELF_METADATA_URL, then the upstream catalog URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l

		s, err := secrets.Load(secrets.DefaultDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./padelf.yaml or ~/.config/padelf/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("padelf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "padelf"))
		}
	}

	viper.SetEnvPrefix("PADELF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("user_agent", catalog.DefaultUserAgent)
	viper.SetDefault("index.db_path", "padelf.db")
	viper.SetDefault("index.max_results", 50)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// appConfig collects settings from config file and environment. Env and
// config-file source settings sit below explicit flags in precedence.
func appConfig() types.AppConfig {
	return types.AppConfig{
		Source: types.SourceConfig{
			MetadataPath: viper.GetString("metadata_path"),
			MetadataURL:  viper.GetString("metadata_url"),
		},
		HTTP: types.HTTPConfig{
			UserAgent: viper.GetString("user_agent"),
			Token:     secretDefault(viper.GetString("github_token"), secrets.KeyGitHubToken),
		},
		Index: types.IndexConfig{
			DBPath:     viper.GetString("index.db_path"),
			MaxResults: viper.GetInt("index.max_results"),
		},
	}
}

func newLoader(cfg types.AppConfig) *catalog.Loader {
	return catalog.NewLoader(
		catalog.WithLogger(logger),
		catalog.WithHTTPConfig(cfg.HTTP),
		catalog.WithSources(source.Config{
			EnvPath:    cfg.Source.MetadataPath,
			EnvURL:     cfg.Source.MetadataURL,
			DefaultURL: source.DefaultURL,
		}),
	)
}

// addSourceFlags registers --path and --url on cmd.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "local datasets.yaml (wins over --url)")
	cmd.Flags().String("url", "", "remote datasets.yaml URL")
}

// explicitSource returns the descriptor from --path/--url, or nil when
// neither flag was given so that env and defaults apply.
func explicitSource(cmd *cobra.Command) *source.Descriptor {
	path, _ := cmd.Flags().GetString("path")
	url, _ := cmd.Flags().GetString("url")
	if path == "" && url == "" {
		return nil
	}
	return &source.Descriptor{Path: path, URL: url}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
