package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filmlog/internal/dbx"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/movies"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Movies(db dbx.DBTX) movies.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
