package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored credentials.
const DefaultCost = 10

// MaxPasswordLength is the longest password bcrypt will accept, in bytes.
const MaxPasswordLength = 72

// PasswordHasher hashes and checks credentials with bcrypt.
// It is immutable and safe for concurrent use.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost. A cost outside
// bcrypt's range falls back to DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext. Hashing the same input twice
// gives different results.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordLength {
		return "", fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, MaxPasswordLength)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
// an unreadable hash is an internal error.
func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: comparing password: %v", common.ErrorInternal, err)
	}
}
