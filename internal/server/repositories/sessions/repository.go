// Package sessions stores the server-side record of issued login tokens.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/filmlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	// Find returns the session for token or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
