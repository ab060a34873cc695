package auth

import (
	"context"
	"time"
)

// Identity is the account record carried by a session token and attached to
// authenticated requests. ID is the only field used for ownership checks.
type Identity struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`

	// TokenID makes every issued token distinct, even for the same account
	// within one second.
	TokenID string `json:"jti,omitempty"`

	// Set by the codec when the token was issued with a TTL.
	IssuedAt  int64 `json:"iat,omitempty"`
	ExpiresAt int64 `json:"exp,omitempty"`
}

// Expires returns the token expiry, or the zero time for tokens without one.
func (i Identity) Expires() time.Time {
	if i.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(i.ExpiresAt, 0)
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
