package models

// User identifies the logged-in administrator.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}
