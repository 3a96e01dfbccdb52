// Package store keeps the small amount of local state the client needs:
// the session token and optional keyword rules for offline suggestions.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/validation"
)

// Session is what the credential file holds.
type Session struct {
	Token    string    `yaml:"token"`
	Username string    `yaml:"username,omitempty"`
	SavedAt  time.Time `yaml:"saved_at,omitempty"`
}

// CredentialStore persists the session token in a file only the current
// user can read.
type CredentialStore struct {
	Path   string
	logger logging.Logger
}

// DefaultTokenPath returns $HOME/.config/expensewise/token.
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "expensewise", "token"), nil
}

// NewCredentialStore creates a store backed by path.
func NewCredentialStore(path string, logger logging.Logger) *CredentialStore {
	return &CredentialStore{Path: path, logger: logging.OrNop(logger)}
}

// Load reads the stored session. A missing file yields an empty session.
func (s *CredentialStore) Load() (Session, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read credential file: %w", err)
	}
	if err := validation.CredentialFile(s.Path); err != nil {
		s.logger.WithError(err).Warn("Credential file is readable by other users")
	}

	var session Session
	if err := yaml.Unmarshal(data, &session); err != nil || session.Token == "" {
		// Plain files holding just the token are accepted too.
		raw := strings.TrimSpace(string(data))
		if strings.ContainsAny(raw, " \n:") {
			return Session{}, fmt.Errorf("credential file %s is not a valid session", s.Path)
		}
		return Session{Token: raw}, nil
	}
	return session, nil
}

// Token implements gateway.CredentialProvider.
func (s *CredentialStore) Token(_ context.Context) (string, error) {
	session, err := s.Load()
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// Save writes the session, creating the parent directory when needed.
func (s *CredentialStore) Save(session Session) error {
	if strings.TrimSpace(session.Token) == "" {
		return errors.New("refusing to save an empty token")
	}
	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now().UTC()
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}
	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.Path, data, models.PermissionCredentialFile); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.Path, models.PermissionCredentialFile); err != nil {
		return fmt.Errorf("restrict credential file: %w", err)
	}

	s.logger.Debug("Saved session", logging.Field{Key: logging.FieldOutputFile, Value: s.Path})
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func (s *CredentialStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

// StaticCredentials serves a token supplied from the environment or flags.
type StaticCredentials string

// Token implements gateway.CredentialProvider.
func (s StaticCredentials) Token(_ context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}
