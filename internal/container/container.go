// Package container provides dependency injection for the expensewise client.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/config"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/dashboard"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/entry"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/export"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/gateway"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/report"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/store"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/suggest"
)

// SessionStore keeps the token obtained at login.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	Save(session store.Session) error
	Clear() error
}

// Option overrides a dependency NewContainer would otherwise build.
type Option func(*options)

type options struct {
	logger     logging.Logger
	httpClient *http.Client
	sessions   SessionStore
	generator  suggest.TextGenerator
}

// WithLogger replaces the logger built from the log configuration.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient sends every backend request through client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithSessionStore replaces the token file.
func WithSessionStore(s SessionStore) Option {
	return func(o *options) { o.sessions = s }
}

// WithTextGenerator replaces the Gemini client used when AI is enabled.
func WithTextGenerator(g suggest.TextGenerator) Option {
	return func(o *options) { o.generator = g }
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	sessions SessionStore
	gateway  *gateway.Client

	suggester *suggest.Adapter
	gemini    *suggest.GeminiStrategy
	closers   []io.Closer

	dashboard *dashboard.Loader
	renderer  *report.Renderer
	exporter  *export.Writer
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	sessions := o.sessions
	if sessions == nil {
		path, err := cfg.TokenFilePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token file: %w", err)
		}
		sessions = store.NewCredentialStore(path, logger)
	}

	// An explicit token wins over the stored session.
	var credentials gateway.CredentialProvider = sessions
	if token := strings.TrimSpace(cfg.Auth.Token); token != "" {
		credentials = store.StaticCredentials(token)
	}

	client, err := gateway.New(gateway.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.APITimeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Proxy: gateway.ProxyConfig{
			Address:  cfg.API.ProxySOCKS5,
			User:     cfg.API.ProxyUser,
			Password: cfg.API.ProxyPassword,
		},
		HTTPClient:  o.httpClient,
		Credentials: credentials,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	c := &Container{
		logger:   logger,
		config:   cfg,
		sessions: sessions,
		gateway:  client,
	}

	// Suggestion strategies, most authoritative first
	strategies := []suggest.Strategy{suggest.NewRemoteStrategy(client)}
	if cfg.Suggestion.KeywordsFile != "" {
		keywords := suggest.NewKeywordStrategy(store.NewKeywordStore(cfg.Suggestion.KeywordsFile, logger), logger)
		strategies = append(strategies, keywords)
	}
	if cfg.AI.Enabled {
		generator := o.generator
		if generator == nil {
			gemini, err := suggest.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
			if err != nil {
				return nil, err
			}
			c.closers = append(c.closers, gemini)
			generator = gemini
		}
		c.gemini = suggest.NewGeminiStrategy(generator, models.CategoryNames(models.DefaultCategories()), cfg.AITimeout(), logger)
		strategies = append(strategies, c.gemini)
	}
	c.suggester = suggest.NewAdapter(cfg.Suggestion.MinLength, logger, strategies...)

	c.dashboard = dashboard.NewLoader(client, logger)

	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	c.renderer = report.NewRenderer(format, logger)
	c.exporter = export.NewWriter(export.DefaultDelimiter, logger)

	logger.Debug("Container initialized",
		logging.Field{Key: "base_url", Value: client.BaseURL()},
		logging.Field{Key: "strategies", Value: c.suggester.Strategies()},
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled})

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetSessionStore returns where login tokens are kept.
func (c *Container) GetSessionStore() SessionStore {
	return c.sessions
}

// GetGateway returns the backend client.
func (c *Container) GetGateway() *gateway.Client {
	return c.gateway
}

// GetSuggester returns the category suggestion adapter.
func (c *Container) GetSuggester() *suggest.Adapter {
	return c.suggester
}

// GetDashboard returns the dashboard loader.
func (c *Container) GetDashboard() *dashboard.Loader {
	return c.dashboard
}

// GetRenderer returns the output renderer.
func (c *Container) GetRenderer() *report.Renderer {
	return c.renderer
}

// GetExporter returns the CSV writer.
func (c *Container) GetExporter() *export.Writer {
	return c.exporter
}

// NewListController returns a list view of kind backed by the gateway.
func (c *Container) NewListController(kind models.Kind) *entry.ListController {
	return entry.NewListController(kind, c.gateway, c.logger)
}

// KnownLabels returns the labels a record of kind may carry. Expense
// categories come from the backend, or the defaults when it has none; the
// suggestion strategies are narrowed to the same set.
func (c *Container) KnownLabels(ctx context.Context, kind models.Kind) (labels []string, fallback bool) {
	if kind == models.KindIncome {
		return entry.DefaultLabels(kind), false
	}
	categories, fallback := c.gateway.Categories(ctx)
	labels = models.CategoryNames(categories)
	c.suggester.SetKnownLabels(labels)
	if c.gemini != nil {
		c.gemini.SetCategories(labels)
	}
	return labels, fallback
}

// NewEntryController starts an entry flow for form with suggestions and,
// when enabled, dataset feedback wired in.
func (c *Container) NewEntryController(form entry.Form, known []string, extra ...entry.Option) *entry.Controller {
	opts := []entry.Option{
		entry.WithLogger(c.logger),
		entry.WithSuggester(c.suggester),
		entry.WithKnownLabels(known),
	}
	if c.config.Suggestion.Feedback {
		opts = append(opts, entry.WithFeedback(c.gateway))
	}
	opts = append(opts, extra...)
	return entry.NewController(form, c.gateway, opts...)
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	c.logger.Debug("Container closed")
	return firstErr
}
