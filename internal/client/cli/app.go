package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/filmlog/internal/client/client"
	"github.com/dmitrijs2005/filmlog/internal/client/config"
	"github.com/dmitrijs2005/filmlog/internal/client/models"
)

// APIClient is the part of client.HTTPClient the commands use.
type APIClient interface {
	LoggedIn() bool
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, email string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Movies(ctx context.Context) ([]models.Movie, error)
	AddMovie(ctx context.Context, m models.NewMovie) (*models.Movie, error)
}

type App struct {
	config *config.Config
	api    APIClient
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerURL, c.Secret, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.email
	}
	return ""
}

// Run checks the server and starts the REPL. It returns when the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to filmlog CLI (server %s, type 'help' for commands)\n", a.config.ServerURL)
	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
	if a.isLoggedIn() {
		_ = a.api.Logout(ctx)
	}
}
