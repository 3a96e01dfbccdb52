package suggest

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
)

// DefaultMinLength is the description length a suggestion needs to exceed.
const DefaultMinLength = 3

// Result is the outcome of one suggestion attempt.
type Result struct {
	Label  string
	Source string
	OK     bool
}

// Adapter runs strategies in order and returns the first answer. It never
// returns an error.
type Adapter struct {
	MinLength  int
	strategies []Strategy
	logger     logging.Logger

	mu    sync.RWMutex
	known map[string]string
}

// NewAdapter creates an Adapter. A negative minLength falls back to
// DefaultMinLength.
func NewAdapter(minLength int, logger logging.Logger, strategies ...Strategy) *Adapter {
	if minLength < 0 {
		minLength = DefaultMinLength
	}
	return &Adapter{
		MinLength:  minLength,
		strategies: strategies,
		logger:     logging.OrNop(logger),
	}
}

// Strategies returns the configured strategy names in order.
func (a *Adapter) Strategies() []string {
	names := make([]string, 0, len(a.strategies))
	for _, s := range a.strategies {
		names = append(names, s.Name())
	}
	return names
}

// SetKnownLabels restricts suggestions to labels (case-insensitive) and
// normalizes them to the given spelling. An empty list lifts the
// restriction.
func (a *Adapter) SetKnownLabels(labels []string) {
	known := make(map[string]string, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			known[strings.ToLower(l)] = l
		}
	}
	a.mu.Lock()
	a.known = known
	a.mu.Unlock()
}

// ShouldQuery reports whether description is long enough to ask for a
// suggestion.
func (a *Adapter) ShouldQuery(description string) bool {
	return utf8.RuneCountInString(description) > a.MinLength
}

// Suggest returns the first usable answer, or a zero Result.
func (a *Adapter) Suggest(ctx context.Context, description string) Result {
	if !a.ShouldQuery(description) {
		return Result{}
	}

	for _, s := range a.strategies {
		if ctx.Err() != nil {
			return Result{}
		}

		label, ok, err := s.Suggest(ctx, description)
		if err != nil {
			a.logger.WithError(err).Warn("Suggestion strategy failed",
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()})
			continue
		}
		if !ok {
			continue
		}

		canonical, accepted := a.accept(label)
		if !accepted {
			a.logger.Debug("Ignoring suggestion outside the known labels",
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
				logging.Field{Key: logging.FieldCategory, Value: label})
			continue
		}

		a.logger.Debug("Category suggested",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldCategory, Value: canonical})
		return Result{Label: canonical, Source: s.Name(), OK: true}
	}
	return Result{}
}

func (a *Adapter) accept(label string) (string, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.known) == 0 {
		return label, true
	}
	canonical, ok := a.known[strings.ToLower(label)]
	return canonical, ok
}
