// Package movies declares the movie repository contract and its PostgreSQL
// implementation. Every lookup is scoped to the owning user.
package movies

import (
	"context"

	"github.com/dmitrijs2005/filmlog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Movie, error)
	// Get returns common.ErrorNotFound when movieID does not belong to userID.
	Get(ctx context.Context, userID, movieID string) (*models.Movie, error)
	Update(ctx context.Context, userID, movieID string, upd models.MovieUpdate) (*models.Movie, error)
	Delete(ctx context.Context, userID, movieID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
