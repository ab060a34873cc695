package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/client/models"
	"github.com/dmitrijs2005/filmlog/internal/dbx"
	"github.com/dmitrijs2005/filmlog/internal/server/auth"
	"github.com/dmitrijs2005/filmlog/internal/server/httpapi"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/memory"
	"github.com/dmitrijs2005/filmlog/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "client-test-secret"

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte(testSecret))
	require.NoError(t, err)

	m := memory.NewManager()
	users := services.NewUserService(dbx.NopStore{}, m, auth.NewPasswordHasher(4), codec, time.Hour)
	movies := services.NewMovieService(dbx.NopStore{}, m)

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.RouterDeps{
		Users:    users,
		Movies:   movies,
		Sessions: users,
		Codec:    codec,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, url, secret string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(url, secret, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8080", "://x"} {
		_, err := NewHTTPClient(u, "", time.Second)
		assert.Error(t, err, u)
	}
}

func TestHTTPClient_Flow(t *testing.T) {
	for _, secret := range []string{"", testSecret} {
		name := "plain"
		if secret != "" {
			name = "signed"
		}
		t.Run(name, func(t *testing.T) {
			srv := newAPI(t)
			c := newClient(t, srv.URL, secret)
			ctx := context.Background()

			require.NoError(t, c.Ping(ctx))

			id, err := c.Register(ctx, "alice", "alice@example.org", []byte("pw"))
			require.NoError(t, err)
			require.NotEmpty(t, id)

			_, err = c.Register(ctx, "alice", "alice@example.org", []byte("pw"))
			assert.ErrorIs(t, err, ErrAlreadyExists)

			require.NoError(t, c.Login(ctx, "alice@example.org", []byte("pw")))
			assert.True(t, c.LoggedIn())
			assert.Equal(t, id, c.UserID())

			list, err := c.Movies(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			rating := 4
			added, err := c.AddMovie(ctx, models.NewMovie{
				Title:      "Alien",
				Date:       models.MovieDate{Year: "1979", Month: "May", Day: "25"},
				StarRating: &rating,
			})
			require.NoError(t, err)
			assert.Equal(t, "May 25 1979", added.Date)
			assert.Equal(t, 4, added.StarRating)

			list, err = c.Movies(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, added.ID, list[0].ID)

			require.NoError(t, c.Logout(ctx))
			assert.False(t, c.LoggedIn())
			_, err = c.Movies(ctx)
			assert.ErrorIs(t, err, ErrNotLoggedIn)
		})
	}
}

func TestHTTPClient_LoginWrongPassword(t *testing.T) {
	srv := newAPI(t)
	c := newClient(t, srv.URL, "")
	ctx := context.Background()

	_, err := c.Register(ctx, "bob", "bob@example.org", []byte("right"))
	require.NoError(t, err)

	err = c.Login(ctx, "bob@example.org", []byte("wrong"))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.LoggedIn())
}

func TestHTTPClient_WrongSecret(t *testing.T) {
	srv := newAPI(t)
	c := newClient(t, srv.URL, "not-the-server-secret")

	_, err := c.Register(context.Background(), "eve", "eve@example.org", []byte("pw"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid payload", apiErr.Message)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newClient(t, url, "")
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestMapError(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrAlreadyExists},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))
		c := newClient(t, srv.URL, "")
		err := c.Ping(context.Background())
		assert.ErrorIs(t, err, tc.want)
		assert.Contains(t, err.Error(), "nope")
		srv.Close()
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()
	var apiErr *APIError
	require.ErrorAs(t, newClient(t, srv.URL, "").Ping(context.Background()), &apiErr)
	assert.Equal(t, http.StatusTeapot, apiErr.Status)
}

func TestSubjectOf(t *testing.T) {
	codec, err := auth.NewTokenCodec([]byte("x"))
	require.NoError(t, err)

	tok, err := codec.Sign(auth.Identity{ID: "u-1"})
	require.NoError(t, err)
	id, err := subjectOf(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	tok, err = codec.Sign(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)
	_, err = subjectOf(tok)
	assert.Error(t, err)

	_, err = subjectOf("garbage")
	assert.Error(t, err)
}
