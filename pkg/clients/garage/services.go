package garage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// ListServices returns every service record including line items.
func (c *Client) ListServices(ctx context.Context) ([]models.ServiceRecord, error) {
	return getList[models.ServiceRecord](ctx, c, "/api/services")
}

// CreateService persists a new service record.
func (c *Client) CreateService(ctx context.Context, record models.ServiceRecord) error {
	return c.send(ctx, http.MethodPost, "/api/services", record)
}

// UpdateService replaces the service record with the given id.
func (c *Client) UpdateService(ctx context.Context, id int, record models.ServiceRecord) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/services/%d", id), record)
}

// DeleteService removes the service record with the given id.
func (c *Client) DeleteService(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/services/%d", id), nil)
}

// DownloadBill fetches the generated bill for a persisted record as a
// raw binary payload (PDF). Callers decide where to write it.
func (c *Client) DownloadBill(ctx context.Context, id int) ([]byte, error) {
	remoteErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetError(remoteErr).
		Post(fmt.Sprintf("/api/download/%d", id))
	if err != nil {
		return nil, fmt.Errorf("download bill %d: %w", id, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, &APIError{Status: resp.StatusCode(), Message: remoteErr.Message}
	}

	return resp.Body(), nil
}
