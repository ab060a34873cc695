package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/filmlog/internal/client/client"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ListMovies(ctx context.Context) error
	AddMovie(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until the user
// types "exit" or "quit", or input ends.
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help           show available commands
//	  - movies | (l)ist  list your movies
//	  - add-movie      add a movie
//	  - logout         log out
//	  - exit | quit    leave the program
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		prompt := "filmlog> "
		if s := statusFn(); s != "" {
			prompt = fmt.Sprintf("filmlog (%s)> ", s)
		}
		fmt.Fprint(w, prompt)

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				fmt.Fprintln(w)
				return
			}
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: movies (l)ist, add-movie, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "movies", "list", "l":
			cmdErr = a.ListMovies(ctx)
		case "add-movie", "add":
			cmdErr = a.AddMovie(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "error:", describe(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

// describe turns client errors into hints for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "please login first"
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized: " + err.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}
