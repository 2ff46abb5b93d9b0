package models

// Stock is a parts inventory item. Quantity tracks units on hand and is
// only mutated through stock CRUD, never by service consumption.
type Stock struct {
	ID       int     `json:"id,omitempty"`
	ItemName string  `json:"itemName"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
