package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

// KeywordStore loads keyword rules used for offline category suggestions.
type KeywordStore struct {
	File   string
	logger logging.Logger
}

// NewKeywordStore creates a store reading file.
func NewKeywordStore(file string, logger logging.Logger) *KeywordStore {
	return &KeywordStore{File: file, logger: logging.OrNop(logger)}
}

// FindConfigFile looks for filename as given, under ./config, then under
// $HOME/.config/expensewise.
func (s *KeywordStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "expensewise", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadRules reads the rules file. A missing file yields no rules. Three
// layouts are accepted: a top-level "categories" list, a bare list, or a
// map from category name to keywords.
func (s *KeywordStore) LoadRules() ([]models.KeywordRule, error) {
	if s.File == "" {
		return nil, nil
	}

	path, err := s.FindConfigFile(s.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Keyword rules file not found", logging.Field{Key: logging.FieldPath, Value: s.File})
			return nil, nil
		}
		return nil, fmt.Errorf("resolve keyword rules file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword rules file: %w", err)
	}

	rules, err := parseRules(data)
	if err != nil {
		return nil, fmt.Errorf("parse keyword rules %s: %w", path, err)
	}
	s.logger.Debug("Loaded keyword rules",
		logging.Field{Key: logging.FieldPath, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}

func parseRules(data []byte) ([]models.KeywordRule, error) {
	var file models.KeywordRulesFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Categories) > 0 {
		return normalizeRules(file.Categories), nil
	}

	var list []models.KeywordRule
	if err := yaml.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return normalizeRules(list), nil
	}

	var byName map[string]interface{}
	if err := yaml.Unmarshal(data, &byName); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]models.KeywordRule, 0, len(names))
	for _, name := range names {
		rule := models.KeywordRule{Name: name}
		switch v := byName[name].(type) {
		case []interface{}:
			rule.Keywords = stringsOf(v)
		case map[string]interface{}:
			if kw, ok := v["keywords"].([]interface{}); ok {
				rule.Keywords = stringsOf(kw)
			}
		}
		rules = append(rules, rule)
	}
	return normalizeRules(rules), nil
}

func stringsOf(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// normalizeRules lowercases keywords and drops rules without a name or keywords.
func normalizeRules(rules []models.KeywordRule) []models.KeywordRule {
	out := make([]models.KeywordRule, 0, len(rules))
	for _, r := range rules {
		r.Name = strings.TrimSpace(r.Name)
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}
		if r.Name == "" || len(keywords) == 0 {
			continue
		}
		r.Keywords = keywords
		out = append(out, r)
	}
	return out
}
