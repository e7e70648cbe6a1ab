package models

// User is an account of the back office. PasswordHash is opaque to this
// service and never serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}
