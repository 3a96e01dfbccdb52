package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
)

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient is a TextGenerator backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient connects to Gemini with apiKey and selects model.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: client.GenerativeModel(model)}, nil
}

// Generate returns the text of the first candidate.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Gemini API")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// GeminiStrategy asks a language model to pick one of the known categories.
type GeminiStrategy struct {
	generator  TextGenerator
	categories []string
	timeout    time.Duration
	logger     logging.Logger
}

// NewGeminiStrategy creates a strategy choosing among categories. A zero
// timeout leaves the caller's deadline in charge.
func NewGeminiStrategy(generator TextGenerator, categories []string, timeout time.Duration, logger logging.Logger) *GeminiStrategy {
	return &GeminiStrategy{
		generator:  generator,
		categories: categories,
		timeout:    timeout,
		logger:     logging.OrNop(logger),
	}
}

func (s *GeminiStrategy) Name() string { return SourceGemini }

// SetCategories replaces the categories the model may choose from.
func (s *GeminiStrategy) SetCategories(categories []string) {
	s.categories = categories
}

func (s *GeminiStrategy) Suggest(ctx context.Context, description string) (string, bool, error) {
	if s.generator == nil || len(s.categories) == 0 || strings.TrimSpace(description) == "" {
		return "", false, nil
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, buildPrompt(description, s.categories))
	if err != nil {
		return "", false, err
	}

	label := matchCategory(extractCategory(text), s.categories)
	if label == "" {
		s.logger.Debug("Model answer matched no category",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: "answer", Value: strings.TrimSpace(text)})
		return "", false, nil
	}
	return label, true, nil
}

func buildPrompt(description string, categories []string) string {
	return fmt.Sprintf(`Categorize the following personal expense:
Description: %s

Assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		description, strings.Join(categories, ", "))
}

// extractCategory reads the "Category:" line, falling back to the whole
// answer when the model ignored the format.
func extractCategory(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), "category:") {
			return strings.TrimSpace(line[len("category:"):])
		}
	}
	return strings.TrimSpace(response)
}

// matchCategory maps an answer onto the canonical spelling of a known
// category, or "" when it names none.
func matchCategory(answer string, categories []string) string {
	answer = strings.Trim(strings.TrimSpace(answer), `"'.[]*`)
	if answer == "" {
		return ""
	}
	for _, c := range categories {
		if strings.EqualFold(c, answer) {
			return c
		}
	}
	for _, c := range categories {
		if strings.Contains(strings.ToLower(answer), strings.ToLower(c)) {
			return c
		}
	}
	return ""
}
