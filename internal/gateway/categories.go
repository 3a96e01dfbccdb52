package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

const (
	pathCategories      = "/api/categories/"
	pathPredictCategory = "/api/predict-category/"
	pathUpdateDataset   = "/api/update-dataset/"
)

// Categories returns the backend's expense categories. When the call fails
// or yields nothing usable the default set is returned and fallback is true.
func (c *Client) Categories(ctx context.Context) (categories []models.Category, fallback bool) {
	raw, err := c.do(ctx, http.MethodGet, pathCategories, nil, nil)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to fetch categories, using defaults")
		return models.DefaultCategories(), true
	}

	for _, el := range listElements(raw) {
		if cat, ok := decodeCategory(el); ok {
			categories = append(categories, cat)
		}
	}
	if len(categories) == 0 {
		c.logger.Warn("Backend returned no categories, using defaults")
		return models.DefaultCategories(), true
	}
	return categories, false
}

// decodeCategory accepts {"id":..,"name":..} objects and bare strings.
func decodeCategory(raw json.RawMessage) (models.Category, bool) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		name = strings.TrimSpace(name)
		return models.Category{ID: models.ID(name), Name: name}, name != ""
	}
	var cat models.Category
	if err := json.Unmarshal(raw, &cat); err != nil {
		return models.Category{}, false
	}
	cat.Name = strings.TrimSpace(cat.Name)
	return cat, cat.Name != ""
}

// PredictCategory asks the backend to classify description. An empty string
// with a nil error means the backend had no prediction.
func (c *Client) PredictCategory(ctx context.Context, description string) (string, error) {
	var resp struct {
		PredictedCategory string `json:"predicted_category"`
	}
	body := map[string]string{"description": description}
	if _, err := c.do(ctx, http.MethodPost, pathPredictCategory, body, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.PredictedCategory), nil
}

// UpdateDataset reports a confirmed description/category pair so the
// backend can retrain its classifier.
func (c *Client) UpdateDataset(ctx context.Context, description, category string) error {
	body := map[string]interface{}{
		"new_data": map[string]string{
			"description": description,
			"category":    category,
		},
	}
	_, err := c.do(ctx, http.MethodPost, pathUpdateDataset, body, nil)
	return err
}
