package garage

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// ListCustomers returns every customer, empty when the envelope is
// absent or holds no data.
func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return getList[models.Customer](ctx, c, "/api/customers")
}

// CreateCustomer adds a customer; the backend assigns the id.
func (c *Client) CreateCustomer(ctx context.Context, customer models.Customer) error {
	return c.send(ctx, http.MethodPost, "/api/customers", customer)
}

// UpdateCustomer replaces the customer with the given id.
func (c *Client) UpdateCustomer(ctx context.Context, id int, customer models.Customer) error {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/api/customers/%d", id), customer)
}

// DeleteCustomer removes the customer with the given id.
func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/customers/%d", id), nil)
}
