package httpapi

import (
	"time"

	"github.com/dmitrijs2005/filmlog/internal/server/models"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createUserResponse struct {
	UserID string `json:"user_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type updateUserRequest struct {
	Username string `json:"username"`
}

type updateUserResponse struct {
	Username string `json:"username"`
}

type accountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccount(u *models.User) accountResponse {
	return accountResponse{ID: u.ID, Username: u.UserName, Email: u.Email, CreatedAt: u.CreatedAt}
}

// movieRequest is shared by create and update; absent fields stay nil.
type movieRequest struct {
	Title      *string           `json:"title"`
	Date       *models.MovieDate `json:"date"`
	StarRating *int              `json:"starRating"`
	Review     *string           `json:"review"`
}

func (m movieRequest) toUpdate() models.MovieUpdate {
	return models.MovieUpdate{Title: m.Title, Date: m.Date, StarRating: m.StarRating, Review: m.Review}
}

type movieResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	MonthAndDay string `json:"monthAndDay"`
	StarRating  int    `json:"starRating"`
	Review      string `json:"review"`
}

func toMovie(m *models.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Date:        m.Date.Full(),
		MonthAndDay: m.Date.MonthAndDay(),
		StarRating:  m.StarRating,
		Review:      m.Review,
	}
}

func toMovies(ms []*models.Movie) []movieResponse {
	out := make([]movieResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMovie(m))
	}
	return out
}
