// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the pipeline configuration. Values come from CLI flags,
// an optional JSON or TOML file, and the environment, in that order of
// precedence; anything still unset falls back to Defaults.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty" toml:"database_url"` // PostgreSQL connection URL
	DBHost      string `json:"db_host,omitempty" toml:"db_host"`
	DBPort      string `json:"db_port,omitempty" toml:"db_port"`
	DBName      string `json:"db_name,omitempty" toml:"db_name"`
	DBUser      string `json:"db_user,omitempty" toml:"db_user"`
	DBPassword  string `json:"db_password,omitempty" toml:"db_password"`

	// Credentials
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" toml:"youtube_api_key"`
	GeminiAPIKey  string `json:"gemini_api_key,omitempty" toml:"gemini_api_key"`

	// Collection
	MaxResults int    `json:"max_results,omitempty" toml:"max_results"` // Search results per keyword
	YtDlpPath  string `json:"ytdlp_path,omitempty" toml:"ytdlp_path"`

	// Concurrency and timing
	Concurrency         int     `json:"concurrency,omitempty" toml:"concurrency"`
	TimeoutSeconds      int     `json:"timeout_seconds,omitempty" toml:"timeout_seconds"`
	YtDlpTimeoutSeconds int     `json:"ytdlp_timeout_seconds,omitempty" toml:"ytdlp_timeout_seconds"`
	RetryCount          int     `json:"retry_count,omitempty" toml:"retry_count"`
	RetryDelaySeconds   int     `json:"retry_delay_seconds,omitempty" toml:"retry_delay_seconds"`
	RequestsPerSecond   float64 `json:"requests_per_second,omitempty" toml:"requests_per_second"` // 0 disables LLM pacing

	// Extraction
	Model         string `json:"model,omitempty" toml:"model"`                     // Overrides the standard-tier model
	MaxInputChars int    `json:"max_input_chars,omitempty" toml:"max_input_chars"` // Source text budget per video

	// Output
	LogLevel  string `json:"log_level,omitempty" toml:"log_level"`
	LogFormat string `json:"log_format,omitempty" toml:"log_format"`
	LogDir    string `json:"log_dir,omitempty" toml:"log_dir"`
	Verbose   bool   `json:"verbose,omitempty" toml:"verbose"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DBHost:              "localhost",
		DBPort:              "5432",
		DBName:              "youtube_crawler",
		DBUser:              "postgres",
		DBPassword:          "password",
		MaxResults:          20,
		YtDlpPath:           "yt-dlp",
		Concurrency:         5,
		TimeoutSeconds:      30,
		YtDlpTimeoutSeconds: 60,
		RetryCount:          3,
		RetryDelaySeconds:   2,
		MaxInputChars:       8000,
		LogLevel:            "INFO",
		LogFormat:           "text",
	}
}

// LoadConfig loads configuration from a JSON or TOML file (chosen by the
// .toml extension). Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
		return &cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv reads the configuration from environment variables. Unset
// variables leave their field at the zero value.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		YtDlpPath:     os.Getenv("YTDLP_PATH"),
		Model:         os.Getenv("LLM_MODEL"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		LogDir:        os.Getenv("LOG_DIR"),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"CONCURRENCY_LIMIT", &cfg.Concurrency},
		{"TIMEOUT_SECONDS", &cfg.TimeoutSeconds},
		{"YTDLP_TIMEOUT", &cfg.YtDlpTimeoutSeconds},
		{"RETRY_COUNT", &cfg.RetryCount},
		{"RETRY_DELAY_SECONDS", &cfg.RetryDelaySeconds},
		{"LLM_MAX_INPUT_CHARS", &cfg.MaxInputChars},
		{"MAX_RESULTS", &cfg.MaxResults},
	}
	for _, v := range ints {
		raw := strings.TrimSpace(os.Getenv(v.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: %s must be an integer: %w", v.name, err)
		}
		*v.dst = n
	}

	if raw := strings.TrimSpace(os.Getenv("LLM_REQUESTS_PER_SECOND")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("config error: LLM_REQUESTS_PER_SECOND must be a number: %w", err)
		}
		cfg.RequestsPerSecond = rps
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for credentials since not every command needs them.
func (c *Config) Validate() error {
	nonNegative := []struct {
		name  string
		value int
	}{
		{"concurrency", c.Concurrency},
		{"timeout_seconds", c.TimeoutSeconds},
		{"ytdlp_timeout_seconds", c.YtDlpTimeoutSeconds},
		{"retry_count", c.RetryCount},
		{"retry_delay_seconds", c.RetryDelaySeconds},
		{"max_input_chars", c.MaxInputChars},
		{"max_results", c.MaxResults},
	}
	for _, field := range nonNegative {
		if field.value < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", field.name)
		}
	}
	if c.MaxResults > 50 {
		return fmt.Errorf("config error: 'max_results' must be at most 50")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config error: 'requests_per_second' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over file values over environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	strs := []struct {
		dst *string
		def string
	}{
		{&result.DatabaseURL, defaults.DatabaseURL},
		{&result.DBHost, defaults.DBHost},
		{&result.DBPort, defaults.DBPort},
		{&result.DBName, defaults.DBName},
		{&result.DBUser, defaults.DBUser},
		{&result.DBPassword, defaults.DBPassword},
		{&result.YouTubeAPIKey, defaults.YouTubeAPIKey},
		{&result.GeminiAPIKey, defaults.GeminiAPIKey},
		{&result.YtDlpPath, defaults.YtDlpPath},
		{&result.Model, defaults.Model},
		{&result.LogLevel, defaults.LogLevel},
		{&result.LogFormat, defaults.LogFormat},
		{&result.LogDir, defaults.LogDir},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = s.def
		}
	}

	ints := []struct {
		dst *int
		def int
	}{
		{&result.MaxResults, defaults.MaxResults},
		{&result.Concurrency, defaults.Concurrency},
		{&result.TimeoutSeconds, defaults.TimeoutSeconds},
		{&result.YtDlpTimeoutSeconds, defaults.YtDlpTimeoutSeconds},
		{&result.RetryCount, defaults.RetryCount},
		{&result.RetryDelaySeconds, defaults.RetryDelaySeconds},
		{&result.MaxInputChars, defaults.MaxInputChars},
	}
	for _, i := range ints {
		if *i.dst == 0 {
			*i.dst = i.def
		}
	}

	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = defaults.RequestsPerSecond
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveDatabaseURL returns DatabaseURL, or builds one from the DB_* parts.
func (c *Config) ResolveDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBName == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}
	return u.String()
}

// Timeout is the per-item deadline for network calls.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// YtDlpTimeout is the deadline for one caption download.
func (c *Config) YtDlpTimeout() time.Duration {
	return time.Duration(c.YtDlpTimeoutSeconds) * time.Second
}

// RetryDelay is the fixed pause between retries.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}
