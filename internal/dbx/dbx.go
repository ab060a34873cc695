// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a helper to run functions inside a transaction, and Store, which lets
// services run unit-of-work code without knowing the backend.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// Store hands out the handle repositories are bound to.
type Store interface {
	// Conn returns the non-transactional handle.
	Conn() DBTX
	// WithTx runs fn inside a unit of work.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLStore is a Store over a database/sql pool.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Conn() DBTX { return s.db }

// DB exposes the pool for migrations and shutdown.
func (s *SQLStore) DB() *sql.DB { return s.db }

func (s *SQLStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return WithTx(ctx, s.db, nil, fn)
}

// NopStore backs repositories that ignore the handle (the in-memory backend).
// WithTx simply calls fn; it is not atomic.
type NopStore struct{}

func (NopStore) Conn() DBTX { return nil }

func (NopStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return fn(ctx, nil)
}
