package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/filmlog/internal/client/client"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) Register(context.Context) error { return f.record("register") }

func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}

func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func (f *fakeExec) ListMovies(context.Context) error { return f.record("movies") }

func (f *fakeExec) AddMovie(context.Context) error { return f.record("add-movie") }

func TestRunREPL_Commands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"register",
		"login",
		"help",
		"",
		"movies",
		"l",
		"add-movie",
		"foobar",
		"logout",
		"exit",
		"movies",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "me" }, rdr(input), &out)

	assert.Equal(t, []string{"register", "login", "movies", "movies", "add-movie", "logout"}, exec.calls)
	s := out.String()
	assert.Contains(t, s, "Available commands: register, login, exit")
	assert.Contains(t, s, "Available commands: movies (l)ist, add-movie, logout, exit")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "filmlog (me)> ")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("register"), &out)

	assert.Equal(t, []string{"register"}, exec.calls)
	assert.True(t, strings.HasPrefix(out.String(), "filmlog> "))
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	exec := &fakeExec{err: client.ErrNotLoggedIn}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, rdr("movies\nquit\n"), &out)

	assert.Contains(t, out.String(), "error: please login first")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "please login first", describe(client.ErrNotLoggedIn))
	assert.Equal(t, "server unavailable", describe(fmt.Errorf("%w: dial", client.ErrUnavailable)))
	assert.Equal(t, "not authorized: unauthorized", describe(client.ErrUnauthorized))
	assert.Equal(t, "boom", describe(fmt.Errorf("boom")))
}
