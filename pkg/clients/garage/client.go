package garage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TokenSource yields the current bearer token. An empty token means
// nobody is logged in; requests are then sent without an Authorization
// header and authorization failures surface only as remote rejections.
type TokenSource interface {
	Token() string
}

// Client is a resty-backed gateway over the garage REST API. Each
// resource (auth, customers, stocks, services, dashboard) exposes its
// operations as methods grouped per file.
type Client struct {
	http *resty.Client
}

// NewClient builds the gateway. The token source is consulted on every
// request so a login mid-session takes effect immediately.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	restyClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if tokens != nil {
			if token := tokens.Token(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
		}
		return nil
	})

	restyClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("request completed",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()))
		return nil
	})

	return &Client{http: restyClient}
}

// APIError is a remote rejection, carrying the HTTP status and the
// server's message field when the body had one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("garage api error: status=%d", e.Status)
	}
	return fmt.Sprintf("garage api error: status=%d, message=%s", e.Status, e.Message)
}

// apiError mirrors the error body shape returned by the backend.
type apiError struct {
	Message string `json:"message"`
}

// listEnvelope is the {data:[...]} wrapper used by every list endpoint.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// getList fetches a list endpoint and unwraps its envelope. A missing
// envelope or data field is tolerated and yields an empty slice.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	env := new(listEnvelope[T])
	remoteErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(env).
		SetError(remoteErr).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &APIError{Status: resp.StatusCode(), Message: remoteErr.Message}
	}

	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

// getJSON fetches a single JSON payload.
func getJSON[T any](ctx context.Context, c *Client, path string) (*T, error) {
	result := new(T)
	remoteErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(remoteErr).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &APIError{Status: resp.StatusCode(), Message: remoteErr.Message}
	}

	return result, nil
}

// send issues a mutating request and maps remote rejections to APIError.
func (c *Client) send(ctx context.Context, method, path string, body any) error {
	remoteErr := new(apiError)

	req := c.http.R().SetContext(ctx).SetError(remoteErr)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode(), Message: remoteErr.Message}
	}
	return nil
}
