package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/dbx"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/pgerr"
)

const movieColumns = `id, user_id, title, date_year, date_month, date_day, star_rating, review`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	m := &models.Movie{}
	err := s.Scan(&m.ID, &m.UserID, &m.Title, &m.Date.Year, &m.Date.Month, &m.Date.Day, &m.StarRating, &m.Review)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) || pgerr.IsInvalidText(err) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	query := `
		INSERT INTO movies (user_id, title, date_year, date_month, date_day, star_rating, review)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + movieColumns

	m, err := scanMovie(r.db.QueryRowContext(ctx, query,
		movie.UserID, movie.Title, movie.Date.Year, movie.Date.Month, movie.Date.Day, movie.StarRating, movie.Review))
	if err != nil {
		if pgerr.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE user_id = $1 ORDER BY date_year, title`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		if pgerr.IsInvalidText(err) {
			return []*models.Movie{}, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, movieID string) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1 AND user_id = $2`

	m, err := scanMovie(r.db.QueryRowContext(ctx, query, movieID, userID))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return m, nil
}

// Update applies the non-nil fields of upd.
func (r *PostgresRepository) Update(ctx context.Context, userID, movieID string, upd models.MovieUpdate) (*models.Movie, error) {
	query := `
		UPDATE movies SET
			title       = COALESCE($3, title),
			date_year   = COALESCE($4, date_year),
			date_month  = COALESCE($5, date_month),
			date_day    = COALESCE($6, date_day),
			star_rating = COALESCE($7, star_rating),
			review      = COALESCE($8, review)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + movieColumns

	var year, month, day sql.NullString
	if upd.Date != nil {
		year = sql.NullString{String: upd.Date.Year, Valid: true}
		month = sql.NullString{String: upd.Date.Month, Valid: true}
		day = sql.NullString{String: upd.Date.Day, Valid: true}
	}

	m, err := scanMovie(r.db.QueryRowContext(ctx, query,
		movieID, userID, nullString(upd.Title), year, month, day, nullInt(upd.StarRating), nullString(upd.Review)))
	if err != nil {
		return nil, notFoundOr(err)
	}
	return m, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, movieID string) error {
	query := `DELETE FROM movies WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, movieID, userID)
	if err != nil {
		return notFoundOr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
