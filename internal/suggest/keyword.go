package suggest

import (
	"context"
	"strings"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// RuleLoader supplies keyword rules.
type RuleLoader interface {
	LoadRules() ([]models.KeywordRule, error)
}

// KeywordStrategy matches the description against locally configured
// keywords. Rules are tried in file order and the first hit wins.
type KeywordStrategy struct {
	rules  []models.KeywordRule
	logger logging.Logger
}

// NewKeywordStrategy loads the rules once. A loader error leaves the
// strategy without rules.
func NewKeywordStrategy(loader RuleLoader, logger logging.Logger) *KeywordStrategy {
	s := &KeywordStrategy{logger: logging.OrNop(logger)}
	rules, err := loader.LoadRules()
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load keyword rules")
		return s
	}
	s.rules = rules
	return s
}

// NewKeywordStrategyFromRules builds a strategy from rules already in memory.
func NewKeywordStrategyFromRules(rules []models.KeywordRule, logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{rules: rules, logger: logging.OrNop(logger)}
}

func (s *KeywordStrategy) Name() string { return SourceKeyword }

// RuleCount returns the number of loaded rules.
func (s *KeywordStrategy) RuleCount() int { return len(s.rules) }

func (s *KeywordStrategy) Suggest(_ context.Context, description string) (string, bool, error) {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return "", false, nil
	}
	for _, rule := range s.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				s.logger.Debug("Keyword matched",
					logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
					logging.Field{Key: "keyword", Value: kw},
					logging.Field{Key: logging.FieldCategory, Value: rule.Name})
				return rule.Name, true, nil
			}
		}
	}
	return "", false, nil
}
