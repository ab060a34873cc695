package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/dbx"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/repomanager"
)

const (
	MinStarRating = 0
	MaxStarRating = 5
)

// MovieService manages the movies of one owner at a time. Every call is
// scoped by userID, so a foreign movie id looks like a missing one.
type MovieService struct {
	store       dbx.Store
	repomanager repomanager.RepositoryManager
}

func NewMovieService(store dbx.Store, m repomanager.RepositoryManager) *MovieService {
	return &MovieService{store: store, repomanager: m}
}

func (s *MovieService) List(ctx context.Context, userID string) ([]*models.Movie, error) {
	return s.repomanager.Movies(s.store.Conn()).ListByUser(ctx, userID)
}

// Create requires a title and a date; rating and review fall back to 0 and
// models.DefaultReview.
func (s *MovieService) Create(ctx context.Context, userID string, in models.MovieUpdate) (*models.Movie, error) {
	if in.Title == nil {
		return nil, common.Invalid("missing title")
	}
	if in.Date == nil {
		return nil, common.Invalid("missing date")
	}
	if err := validateMovie(in); err != nil {
		return nil, err
	}

	movie := &models.Movie{
		UserID: userID,
		Title:  strings.TrimSpace(*in.Title),
		Date:   *in.Date,
		Review: models.DefaultReview,
	}
	if in.StarRating != nil {
		movie.StarRating = *in.StarRating
	}
	if in.Review != nil && strings.TrimSpace(*in.Review) != "" {
		movie.Review = *in.Review
	}

	m, err := s.repomanager.Movies(s.store.Conn()).Create(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("error creating movie: %w", err)
	}
	return m, nil
}

func (s *MovieService) Get(ctx context.Context, userID, movieID string) (*models.Movie, error) {
	return s.repomanager.Movies(s.store.Conn()).Get(ctx, userID, movieID)
}

// Update changes only the fields set in upd.
func (s *MovieService) Update(ctx context.Context, userID, movieID string, upd models.MovieUpdate) (*models.Movie, error) {
	if err := validateMovie(upd); err != nil {
		return nil, err
	}
	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		upd.Title = &t
	}
	return s.repomanager.Movies(s.store.Conn()).Update(ctx, userID, movieID, upd)
}

func (s *MovieService) Delete(ctx context.Context, userID, movieID string) error {
	return s.repomanager.Movies(s.store.Conn()).Delete(ctx, userID, movieID)
}

func validateMovie(in models.MovieUpdate) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return common.Invalid("missing title")
	}
	if d := in.Date; d != nil {
		switch {
		case strings.TrimSpace(d.Year) == "":
			return common.Invalid("missing date.year")
		case strings.TrimSpace(d.Month) == "":
			return common.Invalid("missing date.month")
		case strings.TrimSpace(d.Day) == "":
			return common.Invalid("missing date.day")
		}
	}
	if r := in.StarRating; r != nil && (*r < MinStarRating || *r > MaxStarRating) {
		return common.Invalid("starRating must be between %d and %d", MinStarRating, MaxStarRating)
	}
	return nil
}
