package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
)

type SessionRepository struct {
	st    *state
	newID func() string
}

func (r *SessionRepository) Create(_ context.Context, s *models.Session) (*models.Session, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.sessions[s.Token]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.st.users[s.UserID]; !ok {
		return nil, common.ErrorNotFound
	}

	out := *s
	out.ID = r.newID()
	out.CreatedAt = time.Now().UTC()
	r.st.sessions[out.Token] = out
	return &out, nil
}

func (r *SessionRepository) Find(_ context.Context, token string) (*models.Session, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	s, ok := r.st.sessions[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	delete(r.st.sessions, token)
	return nil
}

func (r *SessionRepository) DeleteByUser(_ context.Context, userID string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for k, s := range r.st.sessions {
		if s.UserID == userID {
			delete(r.st.sessions, k)
		}
	}
	return nil
}
