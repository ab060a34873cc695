// Package users declares the account repository contract and its
// PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/filmlog/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills ID and CreatedAt. A taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserName(ctx context.Context, id string, userName string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
