package garage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// ListStocks returns the full parts inventory.
func (c *Client) ListStocks(ctx context.Context) ([]models.Stock, error) {
	return getList[models.Stock](ctx, c, "/api/stocks")
}

// CreateStock adds an inventory item.
func (c *Client) CreateStock(ctx context.Context, stock models.Stock) error {
	return c.send(ctx, http.MethodPost, "/api/stocks", stock)
}

// UpdateStock replaces the stock item with the given id.
func (c *Client) UpdateStock(ctx context.Context, id int, stock models.Stock) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/stocks/%d", id), stock)
}

// DeleteStock removes the stock item with the given id.
func (c *Client) DeleteStock(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/stocks/%d", id), nil)
}
