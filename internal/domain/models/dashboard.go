package models

// DashboardSummary carries the headline totals shown on the dashboard.
type DashboardSummary struct {
	TotalCustomers int     `json:"totalCustomers"`
	TotalServices  int     `json:"totalServices"`
	TotalStocks    int     `json:"totalStocks"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
}

// MonthlyServiceCount is the services-per-month series.
type MonthlyServiceCount struct {
	Months []string `json:"months"`
	Counts []int    `json:"counts"`
}

// MonthlyRevenue is the revenue-per-month series.
type MonthlyRevenue struct {
	Months  []string  `json:"months"`
	Revenue []float64 `json:"revenue"`
}

// StockUsage is stock consumption grouped by category.
type StockUsage struct {
	Labels []string  `json:"labels"`
	Usage  []float64 `json:"usage"`
}

// RecentService is one row of the recent-services table.
type RecentService struct {
	CustomerName string  `json:"customerName"`
	VehicleNo    string  `json:"vehicleNo"`
	Date         string  `json:"date"`
	TotalCost    float64 `json:"totalCost"`
}
