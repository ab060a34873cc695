package memory

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
)

type UserRepository struct {
	st    *state
	newID func() string
}

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	for _, u := range r.st.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, common.ErrorAlreadyExists
		}
	}

	user.ID = r.newID()
	user.CreatedAt = time.Now().UTC()
	r.st.users[user.ID] = *user

	out := *user
	return &out, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, u := range r.st.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	u, ok := r.st.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdateUserName(_ context.Context, id string, userName string) (*models.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	u, ok := r.st.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.UserName = userName
	r.st.users[id] = u
	return &u, nil
}

// Delete removes the user together with their movies and sessions, the way
// the foreign keys cascade in PostgreSQL.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.st.users, id)
	for k, m := range r.st.movies {
		if m.UserID == id {
			delete(r.st.movies, k)
		}
	}
	for k, s := range r.st.sessions {
		if s.UserID == id {
			delete(r.st.sessions, k)
		}
	}
	return nil
}
