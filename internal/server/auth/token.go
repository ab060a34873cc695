package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs JSON-object payloads into HS256 JWTs and recovers them.
// The secret is copied at construction and never changes afterwards, so one
// codec can be shared by every request.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customises a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) { c.now = now }
}

// NewTokenCodec builds a codec around secret.
func NewTokenCodec(secret []byte, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token codec: empty signing secret")
	}
	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// Sign serializes payload and signs it. No expiry is embedded. Payloads
// carrying exp, nbf or iat keys are rejected with common.ErrorValidation.
func (c *TokenCodec) Sign(payload any) (string, error) {
	claims, err := toClaims(payload)
	if err != nil {
		return "", err
	}
	return c.sign(claims)
}

// SignWithTTL is Sign plus iat and exp claims; exp is now+ttl.
func (c *TokenCodec) SignWithTTL(payload any, ttl time.Duration) (string, error) {
	claims, err := toClaims(payload)
	if err != nil {
		return "", err
	}
	now := c.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()
	return c.sign(claims)
}

func (c *TokenCodec) sign(claims jwt.MapClaims) (string, error) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: signing token: %v", common.ErrorInternal, err)
	}
	return s, nil
}

// Decode returns the token's payload without checking the signature, or nil
// if token is not a well-formed JWT. Never use it to gate access.
func (c *TokenCodec) Decode(token string) map[string]any {
	claims := jwt.MapClaims{}
	if _, _, err := c.parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// Verify checks the signature and the exp claim, if any, and returns the payload.
// Errors are common.ErrMalformedToken, common.ErrInvalidSignature or
// common.ErrTokenExpired; all of them match common.ErrInvalidToken.
func (c *TokenCodec) Verify(token string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	_, err := c.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return claims, nil
}

// VerifyInto verifies token and decodes its payload into dst.
func (c *TokenCodec) VerifyInto(token string, dst any) error {
	claims, err := c.Verify(token)
	if err != nil {
		return err
	}
	b, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", common.ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
}

// timeClaims are validated by Verify, so a payload carrying them could not
// round-trip. Only SignWithTTL sets them.
var timeClaims = []string{"exp", "nbf", "iat"}

func toClaims(payload any) (jwt.MapClaims, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", common.ErrorValidation, err)
	}
	var claims jwt.MapClaims
	if err := json.Unmarshal(b, &claims); err != nil || claims == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", common.ErrorValidation)
	}
	for _, k := range timeClaims {
		if _, ok := claims[k]; ok {
			return nil, fmt.Errorf("%w: payload must not set the %q claim", common.ErrorValidation, k)
		}
	}
	return claims, nil
}
