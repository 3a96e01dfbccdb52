package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/auth"
	"github.com/tejaswimahajan02/Expense-Tracker-App/cmd/root"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/config"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/container"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/store"
)

func TestAuthCommands_Metadata(t *testing.T) {
	assert.Equal(t, "login", auth.LoginCmd.Use)
	assert.Equal(t, "register", auth.RegisterCmd.Use)
	assert.Equal(t, "logout", auth.LogoutCmd.Use)

	usernameFlag := auth.LoginCmd.Flags().Lookup("username")
	require.NotNil(t, usernameFlag)
	assert.Equal(t, "u", usernameFlag.Shorthand)

	emailFlag := auth.RegisterCmd.Flags().Lookup("email")
	require.NotNil(t, emailFlag)
	assert.Equal(t, "e", emailFlag.Shorthand)
}

func setup(t *testing.T) (*store.MockCredentials, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "abc123",
			"user":  map[string]interface{}{"id": 1, "username": body["username"]},
		})
	}))
	t.Cleanup(server.Close)

	sessions := &store.MockCredentials{}
	cfg := &config.Config{
		Log:    config.LogConfig{Level: "error", Format: "text"},
		API:    config.APIConfig{BaseURL: server.URL, TimeoutSeconds: 5},
		Output: config.OutputConfig{Format: "text"},
	}
	c, err := container.NewContainer(cfg,
		container.WithSessionStore(sessions),
		container.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() { root.SetContainer(nil) })
	return sessions, &calls
}

func execute(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin(t *testing.T) {
	sessions, calls := setup(t)

	_, err := execute(auth.LoginCmd, "\n", "--username", "ann")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password: is required")
	assert.Zero(t, *calls)

	_, err = execute(auth.LoginCmd, "", "--username", "ann", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Empty(t, sessions.Session.Token)

	out, err := execute(auth.LoginCmd, "secret1\n", "--username", "ann", "--password", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ann.")
	assert.Equal(t, "abc123", sessions.Session.Token)
	assert.Equal(t, "ann", sessions.Session.Username)
}

func TestRegister(t *testing.T) {
	sessions, calls := setup(t)

	_, err := execute(auth.RegisterCmd, "", "--username", "bo", "--email", "not-an-email", "--password", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Zero(t, *calls)

	out, err := execute(auth.RegisterCmd, "", "--username", "bo", "--email", "bo@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as bo.")
	assert.Equal(t, "abc123", sessions.Session.Token)
}

func TestLogout(t *testing.T) {
	sessions, _ := setup(t)
	sessions.Session = store.Session{Token: "abc123"}

	out, err := execute(auth.LogoutCmd, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")
	assert.Empty(t, sessions.Session.Token)
}
