package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

const pathGoals = "/api/goals/"

// Goals fetches the user's savings goals.
func (c *Client) Goals(ctx context.Context) ([]models.Goal, error) {
	raw, err := c.do(ctx, http.MethodGet, pathGoals, nil, nil)
	if err != nil {
		return nil, err
	}
	elements := listElements(raw)
	goals := make([]models.Goal, 0, len(elements))
	for _, el := range elements {
		var g models.Goal
		if err := json.Unmarshal(el, &g); err == nil {
			goals = append(goals, g)
		}
	}
	return goals, nil
}
