// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login with server-stored
// sessions, and the account lifecycle.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/dbx"
	"github.com/dmitrijs2005/filmlog/internal/server/auth"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DefaultSessionTTL is used when the service is built with a zero TTL.
const DefaultSessionTTL = 24 * time.Hour

// UserService provides account operations:
//   - Register: create users with a bcrypt credential
//   - Login: verify credentials, mint a token and record the session
//   - Logout / SessionActive: revoke and check sessions
//   - Get, UpdateUserName, Delete: the account itself
type UserService struct {
	store       dbx.Store
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	codec       *auth.TokenCodec
	sessionTTL  time.Duration
	now         func() time.Time
}

// NewUserService wires a UserService. The codec and hasher are shared with
// the HTTP layer and are safe for concurrent use.
func NewUserService(store dbx.Store, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, codec *auth.TokenCodec, sessionTTL time.Duration) *UserService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &UserService{
		store:       store,
		repomanager: m,
		hasher:      hasher,
		codec:       codec,
		sessionTTL:  sessionTTL,
		now:         time.Now,
	}
}

// Register creates an account. The email is trimmed and lower-cased; a taken
// email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	switch {
	case username == "":
		return nil, common.Invalid("missing username")
	case email == "":
		return nil, common.Invalid("missing email")
	case password == "":
		return nil, common.Invalid("missing password")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{UserName: username, Email: email, PasswordHash: hash}
	u, err := s.repomanager.Users(s.store.Conn()).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and returns a signed session token. Unknown
// email and wrong password are indistinguishable (common.ErrorUnauthorized).
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", common.Invalid("missing email")
	}
	if password == "" {
		return "", common.Invalid("missing password")
	}

	user, err := s.repomanager.Users(s.store.Conn()).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	identity := auth.Identity{
		ID:           user.ID,
		Username:     user.UserName,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		TokenID:      uuid.NewString(),
	}
	token, err := s.codec.SignWithTTL(identity, s.sessionTTL)
	if err != nil {
		return "", fmt.Errorf("%w: signing token: %v", common.ErrorInternal, err)
	}

	session := &models.Session{UserID: user.ID, Token: token, ExpiresIn: s.sessionTTL.Milliseconds()}
	if _, err := s.repomanager.Sessions(s.store.Conn()).Create(ctx, session); err != nil {
		return "", fmt.Errorf("%w: storing session: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// Logout revokes the session behind token. Unknown tokens are ignored.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if err := s.repomanager.Sessions(s.store.Conn()).Delete(ctx, token); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// SessionActive reports whether token still has an unexpired session record.
func (s *UserService) SessionActive(ctx context.Context, token string) (bool, error) {
	session, err := s.repomanager.Sessions(s.store.Conn()).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error searching session: %w", err)
	}
	return s.now().Before(session.ExpiresAt()), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.store.Conn()).GetByID(ctx, id)
}

// UpdateUserName is the only account mutation; email and password stay fixed.
func (s *UserService) UpdateUserName(ctx context.Context, id, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, common.Invalid("missing username")
	}
	return s.repomanager.Users(s.store.Conn()).UpdateUserName(ctx, id, username)
}

// Delete removes the account with its movies and sessions in one unit of work.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Movies(tx).DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("error deleting movies: %w", err)
		}
		if err := s.repomanager.Sessions(tx).DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("error deleting sessions: %w", err)
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
