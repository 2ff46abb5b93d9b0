package models

// ServiceRecord is one service job. The embedded Customer is a
// point-in-time billing snapshot copied at save time, not a live
// reference: later edits to the customer do not rewrite saved records.
type ServiceRecord struct {
	ID          int        `json:"id,omitempty"`
	Customer    Customer   `json:"customer"`
	ServiceDate string     `json:"serviceDate"`
	TotalCost   float64    `json:"totalCost"`
	Remarks     string     `json:"remarks"`
	Stocks      []LineItem `json:"stocks"`
}

// LineItem attaches a stock item to a service record. StockName and
// Price are snapshots taken when the stock was selected; price changes
// on the stock item do not retroactively affect saved records.
type LineItem struct {
	ID           int     `json:"id,omitempty"`
	StockID      int     `json:"stockId"`
	StockName    string  `json:"stockName"`
	Price        float64 `json:"price"`
	QuantityUsed int     `json:"quantityUsed"`
}

// Clone returns a deep copy, detaching the line-item slice so edits to
// the copy never leak into the record it was taken from.
func (r ServiceRecord) Clone() ServiceRecord {
	out := r
	out.Stocks = make([]LineItem, len(r.Stocks))
	copy(out.Stocks, r.Stocks)
	return out
}
