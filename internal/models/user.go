package models

// User is an account. PasswordHash holds the bcrypt hash and never leaves
// the server.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
}
