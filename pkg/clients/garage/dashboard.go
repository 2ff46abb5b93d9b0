package garage

import (
	"context"
	"fmt"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// Summary fetches the headline dashboard totals.
func (c *Client) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	return getJSON[models.DashboardSummary](ctx, c, "/api/dashboard/summary")
}

// MonthlyServiceCount fetches the services-per-month series.
func (c *Client) MonthlyServiceCount(ctx context.Context) (*models.MonthlyServiceCount, error) {
	return getJSON[models.MonthlyServiceCount](ctx, c, "/api/dashboard/monthly-service-count")
}

// MonthlyRevenue fetches the revenue-per-month series.
func (c *Client) MonthlyRevenue(ctx context.Context) (*models.MonthlyRevenue, error) {
	return getJSON[models.MonthlyRevenue](ctx, c, "/api/dashboard/monthly-revenue")
}

// StockUsage fetches stock consumption grouped by category.
func (c *Client) StockUsage(ctx context.Context) (*models.StockUsage, error) {
	return getJSON[models.StockUsage](ctx, c, "/api/dashboard/stock-usage")
}

// RecentServices fetches the latest service jobs, at most limit rows.
func (c *Client) RecentServices(ctx context.Context, limit int) ([]models.RecentService, error) {
	result, err := getJSON[[]models.RecentService](ctx, c, fmt.Sprintf("/api/dashboard/recent-services?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	return *result, nil
}
