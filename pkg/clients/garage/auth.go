package garage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a token. When the backend omits the
// user object, one is synthesized from the submitted username so the
// greeting still works.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	result := new(LoginResult)
	remoteErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(result).
		SetError(remoteErr).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &APIError{Status: resp.StatusCode(), Message: remoteErr.Message}
	}

	if result.User.Username == "" {
		result.User = models.User{Username: username}
	}
	return result, nil
}

// Register creates a new console account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.send(ctx, http.MethodPost, "/api/auth/register", body)
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, username, email string) error {
	body := map[string]string{"username": username, "email": email}
	return c.send(ctx, http.MethodPost, "/api/auth/forgot-password", body)
}
