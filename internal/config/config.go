package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/store"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory, or its parent, once
// per process. It never logs so it can run before logging is configured.
func LoadEnv() {
	envOnce.Do(func() {
		for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(envFile); err != nil {
				continue
			}
			_ = godotenv.Load(envFile)
			return
		}
	})
}

// LevelFromEnv parses LOG_LEVEL, defaulting to info.
func LevelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// APITimeout is the per-request deadline for backend calls.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// AITimeout bounds a single Gemini call.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// TokenFilePath returns auth.token_file, or the per-user default location
// when unset. A leading ~ is expanded.
func (c *Config) TokenFilePath() (string, error) {
	path := strings.TrimSpace(c.Auth.TokenFile)
	if path == "" {
		return store.DefaultTokenPath()
	}
	return expandHome(path)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Validate re-checks the configuration, e.g. after command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}
