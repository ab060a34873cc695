package models

import "time"

// Session records an issued bearer token. Deleting it revokes the token.
type Session struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
	// TTL in milliseconds, as handed out at login.
	ExpiresIn int64
}

// ExpiresAt is CreatedAt plus the TTL.
func (s Session) ExpiresAt() time.Time {
	return s.CreatedAt.Add(time.Duration(s.ExpiresIn) * time.Millisecond)
}
