package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword point at the interactive input helpers and
// can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a user name, email and password and creates an account.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	id, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered, user id %s\n", id)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}
	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout closes the session on the server.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.email = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
