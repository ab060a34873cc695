// Package models declares the records persisted by the server.
package models

import "time"

// User is an account. PasswordHash is the bcrypt hash; the plaintext is
// never stored.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
