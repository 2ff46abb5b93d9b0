package servicing

import (
	"strings"

	"github.com/nvraghu/garage-console/internal/domain/models"
)

// The composer methods mutate the record currently open in the modal:
// the embedded customer snapshot, the line-item sequence and the derived
// total. TotalCost is recomputed after every mutation and is never
// settable on its own.

// SelectCustomer copies the chosen customer into the record's embedded
// snapshot. The snapshot is deliberately denormalized: it is a
// point-in-time billing copy, not a foreign key.
func (c *Controller) SelectCustomer(customer models.Customer) {
	c.current.Customer = models.Customer{
		ID:           customer.ID,
		CustomerName: customer.CustomerName,
		Email:        customer.Email,
		Phone:        customer.Phone,
		VehicleNo:    customer.VehicleNo,
	}
}

// FilterCustomers suggests customers whose vehicle number contains the
// term. An empty term yields no suggestions.
func (c *Controller) FilterCustomers(term string) []models.Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matched []models.Customer
	for _, customer := range c.customerList {
		if strings.Contains(strings.ToLower(customer.VehicleNo), term) {
			matched = append(matched, customer)
		}
	}
	return matched
}

// FilterStocks suggests stock items whose name contains the term. An
// empty term yields no suggestions.
func (c *Controller) FilterStocks(term string) []models.Stock {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matched []models.Stock
	for _, stock := range c.stockList {
		if strings.Contains(strings.ToLower(stock.ItemName), term) {
			matched = append(matched, stock)
		}
	}
	return matched
}

// SelectStock attaches a stock item to the record. Selecting a stock
// already present bumps its quantity instead of adding a second line
// item; a new line snapshots the stock's current name and price.
func (c *Controller) SelectStock(stock models.Stock) {
	for i := range c.current.Stocks {
		if c.current.Stocks[i].StockID == stock.ID {
			c.current.Stocks[i].QuantityUsed++
			c.computeTotal()
			return
		}
	}

	c.current.Stocks = append(c.current.Stocks, models.LineItem{
		StockID:      stock.ID,
		StockName:    stock.ItemName,
		Price:        stock.Price,
		QuantityUsed: 1,
	})
	c.computeTotal()
}

// UpdateQuantity adjusts a line item's quantity by delta; dropping to
// zero or below removes the line item entirely.
func (c *Controller) UpdateQuantity(index, delta int) {
	if index < 0 || index >= len(c.current.Stocks) {
		return
	}

	c.current.Stocks[index].QuantityUsed += delta
	if c.current.Stocks[index].QuantityUsed <= 0 {
		c.current.Stocks = append(c.current.Stocks[:index], c.current.Stocks[index+1:]...)
	}
	c.computeTotal()
}

// RemoveLineItem drops a line item unconditionally.
func (c *Controller) RemoveLineItem(index int) {
	if index < 0 || index >= len(c.current.Stocks) {
		return
	}
	c.current.Stocks = append(c.current.Stocks[:index], c.current.Stocks[index+1:]...)
	c.computeTotal()
}

// GrandTotal returns the derived total of the composed record.
func (c *Controller) GrandTotal() float64 {
	return c.current.TotalCost
}

func (c *Controller) computeTotal() {
	var total float64
	for _, item := range c.current.Stocks {
		total += item.Price * float64(item.QuantityUsed)
	}
	c.current.TotalCost = total
}
