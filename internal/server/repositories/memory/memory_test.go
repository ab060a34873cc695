package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/server/models"
	"github.com/dmitrijs2005/filmlog/internal/server/repositories/repomanager"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repomanager.RepositoryManager = (*Manager)(nil)

func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestManager() *Manager {
	m := NewManager()
	m.newID = seqIDs()
	return m
}

func TestUsers_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := newTestManager().Users(nil)

	u, err := repo.Create(ctx, &models.User{UserName: "alice", Email: "a@x.io", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &models.User{UserName: "alice2", Email: "A@x.io", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	byEmail, err := repo.GetByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(byEmail, byID); diff != "" {
		t.Fatalf("lookup mismatch (-email +id):\n%s", diff)
	}

	_, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	upd, err := repo.UpdateUserName(ctx, u.ID, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "alicia", upd.UserName)
}

func TestUsers_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	u, err := m.Users(nil).Create(ctx, &models.User{UserName: "bob", Email: "b@x.io"})
	require.NoError(t, err)
	_, err = m.Movies(nil).Create(ctx, &models.Movie{UserID: u.ID, Title: "Alien"})
	require.NoError(t, err)
	_, err = m.Sessions(nil).Create(ctx, &models.Session{UserID: u.ID, Token: "t"})
	require.NoError(t, err)

	require.NoError(t, m.Users(nil).Delete(ctx, u.ID))
	assert.ErrorIs(t, m.Users(nil).Delete(ctx, u.ID), common.ErrorNotFound)

	list, err := m.Movies(nil).ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = m.Sessions(nil).Find(ctx, "t")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMovies_ScopedByOwner(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	owner, _ := m.Users(nil).Create(ctx, &models.User{Email: "o@x.io"})
	other, _ := m.Users(nil).Create(ctx, &models.User{Email: "p@x.io"})
	repo := m.Movies(nil)

	mv, err := repo.Create(ctx, &models.Movie{UserID: owner.ID, Title: "Heat", Review: models.DefaultReview})
	require.NoError(t, err)

	_, err = repo.Get(ctx, other.ID, mv.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Update(ctx, other.ID, mv.ID, models.MovieUpdate{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, other.ID, mv.ID), common.ErrorNotFound)

	got, err := repo.Get(ctx, owner.ID, mv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Title)
}

func TestMovies_CreateUnknownUser(t *testing.T) {
	_, err := newTestManager().Movies(nil).Create(context.Background(), &models.Movie{UserID: "ghost"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMovies_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	u, _ := m.Users(nil).Create(ctx, &models.User{Email: "o@x.io"})
	repo := m.Movies(nil)

	mv, _ := repo.Create(ctx, &models.Movie{
		UserID: u.ID, Title: "The Best Movie",
		Date:   models.MovieDate{Year: "2017", Month: "March", Day: "8"},
		Review: models.DefaultReview,
	})

	title := "Updated Movie"
	rating := 3
	got, err := repo.Update(ctx, u.ID, mv.ID, models.MovieUpdate{Title: &title, StarRating: &rating})
	require.NoError(t, err)

	want := &models.Movie{
		ID: mv.ID, UserID: u.ID, Title: "Updated Movie",
		Date:       models.MovieDate{Year: "2017", Month: "March", Day: "8"},
		StarRating: 3, Review: models.DefaultReview,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}
}

func TestMovies_ListOrdered(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	u, _ := m.Users(nil).Create(ctx, &models.User{Email: "o@x.io"})
	repo := m.Movies(nil)

	for _, mv := range []models.Movie{
		{Title: "B", Date: models.MovieDate{Year: "2018"}},
		{Title: "A", Date: models.MovieDate{Year: "2018"}},
		{Title: "Z", Date: models.MovieDate{Year: "2001"}},
	} {
		mv.UserID = u.ID
		_, err := repo.Create(ctx, &mv)
		require.NoError(t, err)
	}

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	var titles []string
	for _, mv := range list {
		titles = append(titles, mv.Title)
	}
	assert.Equal(t, []string{"Z", "A", "B"}, titles)

	require.NoError(t, repo.DeleteByUser(ctx, u.ID))
	list, _ = repo.ListByUser(ctx, u.ID)
	assert.Empty(t, list)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()
	u, _ := m.Users(nil).Create(ctx, &models.User{Email: "o@x.io"})
	repo := m.Sessions(nil)

	s, err := repo.Create(ctx, &models.Session{UserID: u.ID, Token: "tok", ExpiresIn: 1000})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	_, err = repo.Create(ctx, &models.Session{UserID: u.ID, Token: "tok"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	found, err := repo.Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.UserID)

	require.NoError(t, repo.Delete(ctx, "tok"))
	require.NoError(t, repo.Delete(ctx, "tok"))
	_, err = repo.Find(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, _ = repo.Create(ctx, &models.Session{UserID: u.ID, Token: "a"})
	_, _ = repo.Create(ctx, &models.Session{UserID: u.ID, Token: "b"})
	require.NoError(t, repo.DeleteByUser(ctx, u.ID))
	_, err = repo.Find(ctx, "a")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	u, err := m.Users(nil).Create(ctx, &models.User{Email: "o@x.io"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Movies(nil).Create(ctx, &models.Movie{UserID: u.ID, Title: fmt.Sprint(i)})
		}(i)
	}
	wg.Wait()

	list, err := m.Movies(nil).ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}
