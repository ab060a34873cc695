// Package cli provides the interactive filmlog command-line client.
//
// It wires configuration and the HTTP API client into a small REPL:
// register, login, list movies, add a movie, logout. Passwords are read from
// the terminal without echo.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
