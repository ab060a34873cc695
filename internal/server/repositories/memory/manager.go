// Package memory is a process-local backend for the repositories. It keeps
// every record in maps guarded by one mutex and is used for development
// runs and end-to-end tests. Data does not survive a restart.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/filmlog/internal/dbx"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/movies"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/users"
	"github.com/google/uuid"
)

type state struct {
	mu       sync.RWMutex
	users    map[string]models.User
	movies   map[string]models.Movie
	sessions map[string]models.Session // keyed by token
}

// Manager vends repositories sharing one in-memory state. The DBTX passed
// to the factories is ignored.
type Manager struct {
	st *state
	// newID is replaceable in tests.
	newID func() string
}

func NewManager() *Manager {
	return &Manager{
		st: &state{
			users:    make(map[string]models.User),
			movies:   make(map[string]models.Movie),
			sessions: make(map[string]models.Session),
		},
		newID: func() string { return uuid.NewString() },
	}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository {
	return &UserRepository{st: m.st, newID: m.newID}
}

func (m *Manager) Movies(dbx.DBTX) movies.Repository {
	return &MovieRepository{st: m.st, newID: m.newID}
}

func (m *Manager) Sessions(dbx.DBTX) sessions.Repository {
	return &SessionRepository{st: m.st, newID: m.newID}
}
