package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/recipe-crawler/internal/config"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	databaseURL string
	apiKey      string
	youtubeKey  string
	concurrency int
	maxResults  int
	verbose     bool
	logLevel    string
}

func addGlobalFlags(cmd *cobra.Command, f *globalFlags) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.configPath, "config", "", "Path to a JSON or TOML config file (values can be overridden by other flags)")
	flags.StringVar(&f.databaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL or DB_* env vars)")
	flags.StringVar(&f.apiKey, "api-key", "", "Gemini API Key (defaults to GEMINI_API_KEY env var)")
	flags.StringVar(&f.youtubeKey, "youtube-key", "", "YouTube Data API key (defaults to YOUTUBE_API_KEY env var)")
	flags.IntVar(&f.concurrency, "concurrency", 0, "Maximum videos processed at once (defaults to CONCURRENCY_LIMIT or 5)")
	flags.IntVar(&f.maxResults, "max-results", 0, "Search results per keyword, at most 50 (defaults to MAX_RESULTS or 20)")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Print every extracted recipe")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN or ERROR (defaults to LOG_LEVEL or INFO)")
}

// loadSettings layers flags over the config file over the environment over
// the built-in defaults.
func loadSettings(cmd *cobra.Command, f globalFlags) (config.Config, error) {
	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	var fileCfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = *loaded
	}

	// Only override if the flag was explicitly set
	var cfg config.Config
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = f.databaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiAPIKey = f.apiKey
	}
	if cmd.Flags().Changed("youtube-key") {
		cfg.YouTubeAPIKey = f.youtubeKey
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if cmd.Flags().Changed("max-results") {
		cfg.MaxResults = f.maxResults
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	} else {
		cfg.Verbose = fileCfg.Verbose
	}

	cfg = cfg.MergeWithDefaults(fileCfg)
	cfg = cfg.MergeWithDefaults(*envCfg)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
