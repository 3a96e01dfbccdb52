// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. EXPENSEWISE_API_BASE_URL.
const EnvPrefix = "EXPENSEWISE"

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// APIConfig describes how to reach the ExpenseWise backend.
type APIConfig struct {
	BaseURL           string  `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second"`
	ProxySOCKS5       string  `mapstructure:"proxy_socks5" yaml:"proxy_socks5"`
	ProxyUser         string  `mapstructure:"proxy_user" yaml:"proxy_user"`
	ProxyPassword     string  `mapstructure:"proxy_password" yaml:"-"`
}

// AuthConfig locates the session token.
type AuthConfig struct {
	TokenFile string `mapstructure:"token_file" yaml:"token_file"`
	Token     string `mapstructure:"token" yaml:"-"`
}

// SuggestionConfig tunes category suggestions while drafting an expense.
type SuggestionConfig struct {
	MinLength    int    `mapstructure:"min_length" yaml:"min_length"`
	KeywordsFile string `mapstructure:"keywords_file" yaml:"keywords_file"`
	Feedback     bool   `mapstructure:"feedback" yaml:"feedback"`
}

// AIConfig enables the Gemini fallback for suggestions.
type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// OutputConfig selects how commands render results.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	API        APIConfig        `mapstructure:"api" yaml:"api"`
	Auth       AuthConfig       `mapstructure:"auth" yaml:"auth"`
	Suggestion SuggestionConfig `mapstructure:"suggestion" yaml:"suggestion"`
	AI         AIConfig         `mapstructure:"ai" yaml:"ai"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return initializeConfig("")
}

// InitializeConfigFromFile behaves like InitializeConfig but reads the given
// file instead of searching the default locations.
func InitializeConfigFromFile(path string) (*Config, error) {
	return initializeConfig(path)
}

func initializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expensewise")
		v.AddConfigPath(".expensewise")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicitly requested)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Secrets keep their conventional names
	binds := map[string]string{
		"ai.api_key":         "GEMINI_API_KEY",
		"auth.token":         EnvPrefix + "_TOKEN",
		"api.proxy_password": EnvPrefix + "_PROXY_PASSWORD",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			fmt.Printf("Warning: failed to bind %s environment variable: %v\n", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.API.BaseURL = strings.TrimRight(strings.TrimSpace(config.API.BaseURL), "/")
	config.Output.Format = strings.ToLower(strings.TrimSpace(config.Output.Format))

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Backend defaults
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.requests_per_second", 0.0)
	v.SetDefault("api.proxy_socks5", "")
	v.SetDefault("api.proxy_user", "")
	v.SetDefault("api.proxy_password", "")

	// Auth defaults
	v.SetDefault("auth.token_file", "")
	v.SetDefault("auth.token", "")

	// Suggestion defaults
	v.SetDefault("suggestion.min_length", 3)
	v.SetDefault("suggestion.keywords_file", "")
	v.SetDefault("suggestion.feedback", false)

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")

	// Output defaults
	v.SetDefault("output.format", "text")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(config.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got: %s", config.API.BaseURL)
	}

	if config.API.TimeoutSeconds < 1 || config.API.TimeoutSeconds > 300 {
		return fmt.Errorf("api.timeout_seconds must be between 1 and 300, got: %d", config.API.TimeoutSeconds)
	}

	if config.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second must not be negative, got: %g", config.API.RequestsPerSecond)
	}

	if config.Suggestion.MinLength < 0 {
		return fmt.Errorf("suggestion.min_length must not be negative, got: %d", config.Suggestion.MinLength)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	switch config.Output.Format {
	case "text", "json", "yaml", "yml":
	default:
		return fmt.Errorf("invalid output format: %s (must be 'text', 'json' or 'yaml')", config.Output.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// NewLogger returns the application Logger configured from config.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapterFromLogger(ConfigureLoggingFromConfig(config))
}
