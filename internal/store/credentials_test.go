package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
)

func TestCredentialStore_SaveLoadClear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "token")
	s := NewCredentialStore(path, logging.NewMockLogger())

	token, err := s.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token, "missing file means no token")

	require.NoError(t, s.Save(Session{Token: "abc123", Username: "ana"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0750), dirInfo.Mode().Perm())

	session, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", session.Token)
	assert.Equal(t, "ana", session.Username)
	assert.False(t, session.SavedAt.IsZero())

	token, err = s.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear(), "clearing twice is fine")
	token, err = s.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestCredentialStore_SaveTightensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	s := NewCredentialStore(path, nil)
	require.NoError(t, s.Save(Session{Token: "new"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCredentialStore_RejectsEmptyToken(t *testing.T) {
	s := NewCredentialStore(filepath.Join(t.TempDir(), "token"), nil)
	assert.Error(t, s.Save(Session{Token: "  "}))
}

func TestCredentialStore_Load(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantToken string
		wantErr   bool
	}{
		{name: "yaml session", content: "token: t-1\nusername: bob\n", wantToken: "t-1"},
		{name: "plain token", content: "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b\n", wantToken: "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b"},
		{name: "empty file", content: "", wantToken: ""},
		{name: "garbage", content: "this is: not\n a session", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			session, err := NewCredentialStore(path, nil).Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, session.Token)
		})
	}
}

func TestCredentialStore_LoadWarnsOnSharedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("token: t-1\n"), 0600))
	require.NoError(t, os.Chmod(path, 0644))

	logger := logging.NewMockLogger()
	session, err := NewCredentialStore(path, logger).Load()
	require.NoError(t, err)
	assert.Equal(t, "t-1", session.Token)
	assert.True(t, logger.HasEntry("WARN", "Credential file is readable by other users"))
}

func TestStaticCredentials(t *testing.T) {
	token, err := StaticCredentials(" env-token\n").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestDefaultTokenPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path, err := DefaultTokenPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.config/expensewise/token", path)
}

func TestMockCredentials(t *testing.T) {
	m := &MockCredentials{}
	require.NoError(t, m.Save(Session{Token: "x"}))
	token, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x", token)
	require.NoError(t, m.Clear())
	assert.Empty(t, m.Session.Token)
}
