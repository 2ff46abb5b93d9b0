package models

// Customer is a garage customer record tied to a single vehicle.
// ID is zero until the backend assigns one on creation.
type Customer struct {
	ID           int    `json:"id,omitempty"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	VehicleNo    string `json:"vehicleNo"`
}
