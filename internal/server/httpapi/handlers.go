package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/logging"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// UserService is the account API the handlers depend on.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateUserName(ctx context.Context, id, username string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// MovieService is the movie API the handlers depend on.
type MovieService interface {
	List(ctx context.Context, userID string) ([]*models.Movie, error)
	Create(ctx context.Context, userID string, in models.MovieUpdate) (*models.Movie, error)
	Get(ctx context.Context, userID, movieID string) (*models.Movie, error)
	Update(ctx context.Context, userID, movieID string, upd models.MovieUpdate) (*models.Movie, error)
	Delete(ctx context.Context, userID, movieID string) error
}

type handlers struct {
	users  UserService
	movies MovieService
	logger logging.Logger
}

// fail writes err as a JSON error. Unexpected errors are logged.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, messageFor(err))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// echo returns the body as the handlers see it, after Detokenize.
func (h *handlers) echo(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := decodeJSON(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	if body == nil {
		body = map[string]any{}
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createUserResponse{UserID: u.ID})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, loginResponse{Token: token})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	// Authenticate already validated the header.
	token, _ := bearerToken(r)
	if err := h.users.Logout(r.Context(), token); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccount(u))
}

func (h *handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.users.UpdateUserName(r.Context(), chi.URLParam(r, "userId"), req.Username)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updateUserResponse{Username: u.UserName})
}

func (h *handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listMovies(w http.ResponseWriter, r *http.Request) {
	ms, err := h.movies.List(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovies(ms))
}

func (h *handlers) createMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	m, err := h.movies.Create(r.Context(), chi.URLParam(r, "userId"), req.toUpdate())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMovie(m))
}

func (h *handlers) getMovie(w http.ResponseWriter, r *http.Request) {
	m, err := h.movies.Get(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "movieId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovie(m))
}

func (h *handlers) updateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	m, err := h.movies.Update(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "movieId"), req.toUpdate())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovie(m))
}

func (h *handlers) deleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.movies.Delete(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "movieId")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
