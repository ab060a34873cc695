package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
)

type MovieRepository struct {
	st    *state
	newID func() string
}

func (r *MovieRepository) Create(_ context.Context, movie *models.Movie) (*models.Movie, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.users[movie.UserID]; !ok {
		return nil, common.ErrorNotFound
	}

	m := *movie
	m.ID = r.newID()
	r.st.movies[m.ID] = m
	return &m, nil
}

// ListByUser orders by year then title, like the PostgreSQL query.
func (r *MovieRepository) ListByUser(_ context.Context, userID string) ([]*models.Movie, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	result := make([]*models.Movie, 0)
	for _, m := range r.st.movies {
		if m.UserID == userID {
			result = append(result, &m)
		}
	}
	slices.SortFunc(result, func(a, b *models.Movie) int {
		return cmp.Or(
			cmp.Compare(a.Date.Year, b.Date.Year),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return result, nil
}

func (r *MovieRepository) Get(_ context.Context, userID, movieID string) (*models.Movie, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	m, ok := r.st.movies[movieID]
	if !ok || m.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func (r *MovieRepository) Update(_ context.Context, userID, movieID string, upd models.MovieUpdate) (*models.Movie, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	m, ok := r.st.movies[movieID]
	if !ok || m.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if upd.Date != nil {
		m.Date = *upd.Date
	}
	if upd.StarRating != nil {
		m.StarRating = *upd.StarRating
	}
	if upd.Review != nil {
		m.Review = *upd.Review
	}
	r.st.movies[movieID] = m
	return &m, nil
}

func (r *MovieRepository) Delete(_ context.Context, userID, movieID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	m, ok := r.st.movies[movieID]
	if !ok || m.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.st.movies, movieID)
	return nil
}

func (r *MovieRepository) DeleteByUser(_ context.Context, userID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for k, m := range r.st.movies {
		if m.UserID == userID {
			delete(r.st.movies, k)
		}
	}
	return nil
}
