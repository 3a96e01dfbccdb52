package container

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/config"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/entry"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/report"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/store"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/suggest"
)

type fixedGenerator string

func (g fixedGenerator) Generate(_ context.Context, _ string) (string, error) {
	return string(g), nil
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Log:        config.LogConfig{Level: "info", Format: "text"},
		API:        config.APIConfig{BaseURL: baseURL, TimeoutSeconds: 5},
		Suggestion: config.SuggestionConfig{MinLength: 3},
		AI:         config.AIConfig{Model: "gemini-2.0-flash", TimeoutSeconds: 5},
		Output:     config.OutputConfig{Format: "text"},
	}
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig("http://localhost:8000"),
		},
		{
			name: "invalid base url",
			config: func() *config.Config {
				c := testConfig("not a url")
				return c
			}(),
			expectError: true,
			errorMsg:    "failed to create gateway client",
		},
		{
			name: "invalid output format",
			config: func() *config.Config {
				c := testConfig("http://localhost:8000")
				c.Output.Format = "xml"
				return c
			}(),
			expectError: true,
			errorMsg:    "unsupported output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			c, err := NewContainer(tt.config, WithLogger(logging.NewMockLogger()))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetGateway())
			assert.NotNil(t, c.GetSessionStore())
			assert.NotNil(t, c.GetSuggester())
			assert.NotNil(t, c.GetDashboard())
			assert.NotNil(t, c.GetRenderer())
			assert.NotNil(t, c.GetExporter())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainer_Strategies(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	keywords := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(keywords, []byte("categories:\n  - name: Food\n    keywords: [pizza]\n"), 0644))

	cfg := testConfig("http://localhost:8000")
	c, err := NewContainer(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{suggest.SourceRemote}, c.GetSuggester().Strategies())

	cfg = testConfig("http://localhost:8000")
	cfg.Suggestion.KeywordsFile = keywords
	cfg.AI.Enabled = true
	cfg.AI.APIKey = "test-key"
	c, err = NewContainer(cfg, WithTextGenerator(fixedGenerator("Category: Food")))
	require.NoError(t, err)
	assert.Equal(t, []string{suggest.SourceRemote, suggest.SourceKeyword, suggest.SourceGemini}, c.GetSuggester().Strategies())
}

func TestNewContainer_RendererFormat(t *testing.T) {
	cfg := testConfig("http://localhost:8000")
	cfg.Output.Format = "json"
	c, err := NewContainer(cfg, WithSessionStore(&store.MockCredentials{}))
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, c.GetRenderer().Format())
}

func TestContainer_CredentialsReachGateway(t *testing.T) {
	tests := []struct {
		name       string
		staticTok  string
		storedTok  string
		wantHeader string
	}{
		{name: "stored session", storedTok: "from-file", wantHeader: "Token from-file"},
		{name: "explicit token wins", staticTok: "from-env", storedTok: "from-file", wantHeader: "Token from-env"},
		{name: "anonymous", wantHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode([]interface{}{})
			}))
			defer server.Close()

			cfg := testConfig(server.URL)
			cfg.Auth.Token = tt.staticTok
			sessions := &store.MockCredentials{Session: store.Session{Token: tt.storedTok}}

			c, err := NewContainer(cfg, WithSessionStore(sessions), WithHTTPClient(server.Client()))
			require.NoError(t, err)

			_, err = c.GetGateway().List(context.Background(), models.KindExpense)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, gotHeader)
		})
	}
}

func TestContainer_KnownLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/categories/":
			_ = json.NewEncoder(w).Encode([]map[string]interface{}{
				{"id": 1, "name": "Food"},
				{"id": 2, "name": "Travel"},
			})
		case "/api/predict-category/":
			_ = json.NewEncoder(w).Encode(map[string]string{"predicted_category": "Shopping"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c, err := NewContainer(testConfig(server.URL),
		WithSessionStore(&store.MockCredentials{}),
		WithHTTPClient(server.Client()))
	require.NoError(t, err)

	labels, fallback := c.KnownLabels(context.Background(), models.KindExpense)
	assert.False(t, fallback)
	assert.Equal(t, []string{"Food", "Travel"}, labels)

	// Shopping is not a fetched category, so the remote answer is dropped.
	result := c.GetSuggester().Suggest(context.Background(), "new shoes")
	assert.False(t, result.OK)

	income, fallback := c.KnownLabels(context.Background(), models.KindIncome)
	assert.False(t, fallback)
	assert.Equal(t, models.DefaultIncomeSources(), income)
}

func TestContainer_NewEntryControllerFeedback(t *testing.T) {
	var feedbackCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/predict-category/":
			_ = json.NewEncoder(w).Encode(map[string]string{"predicted_category": "Shopping"})
		case "/api/update-dataset/":
			feedbackCalls++
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		case "/api/expenses/":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 7, "amount": "12.50", "description": "pizza night", "category": "Entertainment", "date": "2024-05-01",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Suggestion.Feedback = true
	c, err := NewContainer(cfg, WithSessionStore(&store.MockCredentials{}), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	form := entry.NewCreateForm(models.KindExpense, time.Date(2024, 5, 20, 12, 0, 0, 0, time.Local))
	ctrl := c.NewEntryController(form, entry.DefaultLabels(models.KindExpense))

	result, applied := ctrl.SetDescription(context.Background(), "pizza night")
	require.True(t, result.OK)
	assert.True(t, applied)
	assert.Equal(t, "Shopping", ctrl.Form().Label)

	ctrl.SetAmount("12.50")
	ctrl.SetDate("2024-05-01")
	ctrl.SetLabel("Entertainment")
	require.NoError(t, ctrl.Submit(context.Background()))
	assert.Equal(t, entry.Success, ctrl.State())
	assert.Equal(t, 1, feedbackCalls)
}

func TestContainer_NewListController(t *testing.T) {
	c, err := NewContainer(testConfig("http://localhost:8000"), WithSessionStore(&store.MockCredentials{}))
	require.NoError(t, err)
	assert.Equal(t, models.KindIncome, c.NewListController(models.KindIncome).Kind())
}
