package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "http://localhost:8000", config.API.BaseURL)
	assert.Equal(t, 30, config.API.TimeoutSeconds)
	assert.Zero(t, config.API.RequestsPerSecond)
	assert.Empty(t, config.API.ProxySOCKS5)
	assert.Empty(t, config.Auth.TokenFile)
	assert.Empty(t, config.Auth.Token)
	assert.Equal(t, 3, config.Suggestion.MinLength)
	assert.Empty(t, config.Suggestion.KeywordsFile)
	assert.False(t, config.Suggestion.Feedback)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.AI.Model)
	assert.Equal(t, 30, config.AI.TimeoutSeconds)
	assert.Equal(t, "text", config.Output.Format)
	assert.Equal(t, 30*time.Second, config.APITimeout())
	assert.Equal(t, 30*time.Second, config.AITimeout())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolateConfig(t)

	testEnvVars := map[string]string{
		"EXPENSEWISE_LOG_LEVEL":               "debug",
		"EXPENSEWISE_LOG_FORMAT":              "json",
		"EXPENSEWISE_API_BASE_URL":            "https://api.example.test/",
		"EXPENSEWISE_API_TIMEOUT_SECONDS":     "5",
		"EXPENSEWISE_API_REQUESTS_PER_SECOND": "2.5",
		"EXPENSEWISE_SUGGESTION_MIN_LENGTH":   "4",
		"EXPENSEWISE_SUGGESTION_FEEDBACK":     "true",
		"EXPENSEWISE_AI_ENABLED":              "true",
		"EXPENSEWISE_AI_MODEL":                "gemini-1.5-pro",
		"EXPENSEWISE_OUTPUT_FORMAT":           "JSON",
		"EXPENSEWISE_TOKEN":                   "env-token",
		"EXPENSEWISE_PROXY_PASSWORD":          "secret",
		"GEMINI_API_KEY":                      "test-api-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "https://api.example.test", config.API.BaseURL)
	assert.Equal(t, 5, config.API.TimeoutSeconds)
	assert.InDelta(t, 2.5, config.API.RequestsPerSecond, 1e-9)
	assert.Equal(t, 4, config.Suggestion.MinLength)
	assert.True(t, config.Suggestion.Feedback)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, "env-token", config.Auth.Token)
	assert.Equal(t, "secret", config.API.ProxyPassword)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	isolateConfig(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
api:
  base_url: "http://backend:9000"
  timeout_seconds: 10
  proxy_socks5: "127.0.0.1:1080"
suggestion:
  min_length: 5
  keywords_file: "categories.yaml"
output:
  format: "yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "http://backend:9000", config.API.BaseURL)
	assert.Equal(t, 10, config.API.TimeoutSeconds)
	assert.Equal(t, "127.0.0.1:1080", config.API.ProxySOCKS5)
	assert.Equal(t, 5, config.Suggestion.MinLength)
	assert.Equal(t, "categories.yaml", config.Suggestion.KeywordsFile)
	assert.Equal(t, "yaml", config.Output.Format)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	isolateConfig(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
api:
  timeout_seconds: 10
suggestion:
  min_length: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	chdir(t, tempDir)

	t.Setenv("EXPENSEWISE_LOG_LEVEL", "error")
	t.Setenv("EXPENSEWISE_API_TIMEOUT_SECONDS", "20")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)      // env var wins
	assert.Equal(t, 20, config.API.TimeoutSeconds)  // env var wins
	assert.Equal(t, 5, config.Suggestion.MinLength) // config file value
	assert.Equal(t, "text", config.Log.Format)      // default
}

func TestInitializeConfigFromFile(t *testing.T) {
	isolateConfig(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://other:1234\n"), 0644))

	config, err := InitializeConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://other:1234", config.API.BaseURL)

	_, err = InitializeConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitializeConfig_InvalidEnvironment(t *testing.T) {
	isolateConfig(t)
	t.Setenv("EXPENSEWISE_AI_ENABLED", "true")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY required when AI is enabled")
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "missing base url",
			modifyConfig: func(c *Config) { c.API.BaseURL = "" },
			expectError:  "api.base_url is required",
		},
		{
			name:         "relative base url",
			modifyConfig: func(c *Config) { c.API.BaseURL = "localhost" },
			expectError:  "api.base_url must be an absolute URL",
		},
		{
			name:         "api timeout too small",
			modifyConfig: func(c *Config) { c.API.TimeoutSeconds = 0 },
			expectError:  "api.timeout_seconds must be between 1 and 300",
		},
		{
			name:         "api timeout too large",
			modifyConfig: func(c *Config) { c.API.TimeoutSeconds = 301 },
			expectError:  "api.timeout_seconds must be between 1 and 300",
		},
		{
			name:         "negative request rate",
			modifyConfig: func(c *Config) { c.API.RequestsPerSecond = -1 },
			expectError:  "api.requests_per_second must not be negative",
		},
		{
			name:         "negative min length",
			modifyConfig: func(c *Config) { c.Suggestion.MinLength = -1 },
			expectError:  "suggestion.min_length must not be negative",
		},
		{
			name: "AI enabled without API key",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = ""
			},
			expectError: "GEMINI_API_KEY required when AI is enabled",
		},
		{
			name: "invalid AI timeout",
			modifyConfig: func(c *Config) {
				c.AI.Enabled = true
				c.AI.APIKey = "test-key"
				c.AI.TimeoutSeconds = 0
			},
			expectError: "ai.timeout_seconds must be between 1 and 300",
		},
		{
			name:         "invalid output format",
			modifyConfig: func(c *Config) { c.Output.Format = "xml" },
			expectError:  "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_AITimeoutIgnoredWhenDisabled(t *testing.T) {
	config := validConfig()
	config.AI.TimeoutSeconds = 0
	assert.NoError(t, validateConfig(config))
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "text format info level", level: "info", format: "text", wantLevel: logrus.InfoLevel},
		{name: "json format debug level", level: "debug", format: "json", wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "unknown level falls back to info", level: "loud", format: "text", wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			config.Log.Level = tt.level
			config.Log.Format = tt.format

			logger := ConfigureLoggingFromConfig(config)
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)

			assert.NotNil(t, NewLogger(config))
		})
	}
}

func TestTokenFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	config := validConfig()
	path, err := config.TokenFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "expensewise", "token"), path)

	config.Auth.TokenFile = "~/tokens/ew"
	path, err = config.TokenFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tokens", "ew"), path)

	config.Auth.TokenFile = "/var/lib/ew/token"
	path, err = config.TokenFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/ew/token", path)
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	assert.Equal(t, logrus.DebugLevel, LevelFromEnv())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.InfoLevel, LevelFromEnv())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, logrus.InfoLevel, LevelFromEnv())
}

func validConfig() *Config {
	return &Config{
		Log:        LogConfig{Level: "info", Format: "text"},
		API:        APIConfig{BaseURL: "http://localhost:8000", TimeoutSeconds: 30},
		Suggestion: SuggestionConfig{MinLength: 3},
		AI:         AIConfig{Model: "gemini-2.0-flash", TimeoutSeconds: 30},
		Output:     OutputConfig{Format: "text"},
	}
}

// isolateConfig points HOME and the working directory at empty temp dirs and
// clears every variable InitializeConfig reads.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	envVars := []string{
		"EXPENSEWISE_LOG_LEVEL",
		"EXPENSEWISE_LOG_FORMAT",
		"EXPENSEWISE_API_BASE_URL",
		"EXPENSEWISE_API_TIMEOUT_SECONDS",
		"EXPENSEWISE_API_REQUESTS_PER_SECOND",
		"EXPENSEWISE_API_PROXY_SOCKS5",
		"EXPENSEWISE_API_PROXY_USER",
		"EXPENSEWISE_PROXY_PASSWORD",
		"EXPENSEWISE_AUTH_TOKEN_FILE",
		"EXPENSEWISE_TOKEN",
		"EXPENSEWISE_SUGGESTION_MIN_LENGTH",
		"EXPENSEWISE_SUGGESTION_KEYWORDS_FILE",
		"EXPENSEWISE_SUGGESTION_FEEDBACK",
		"EXPENSEWISE_AI_ENABLED",
		"EXPENSEWISE_AI_MODEL",
		"EXPENSEWISE_AI_TIMEOUT_SECONDS",
		"EXPENSEWISE_OUTPUT_FORMAT",
		"GEMINI_API_KEY",
	}
	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(originalDir)
	})
}
