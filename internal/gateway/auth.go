package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/apperror"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/models"
)

const (
	pathLogin    = "/api/login/"
	pathRegister = "/api/register/"
)

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (models.AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	return c.authenticate(ctx, pathLogin, body)
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, username, email, password string) (models.AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.authenticate(ctx, pathRegister, body)
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (models.AuthResult, error) {
	var result models.AuthResult
	if _, err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return models.AuthResult{}, err
	}
	if result.Token == "" {
		return models.AuthResult{}, &apperror.GatewayError{
			Method:     http.MethodPost,
			Path:       path,
			StatusCode: http.StatusOK,
			Message:    "No token received",
			Err:        errors.New("response has no token"),
		}
	}
	return result, nil
}
