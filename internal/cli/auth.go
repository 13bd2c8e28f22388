package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/authify/authify-cli/internal/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, email and password and attempts to create a
// new account. On success the user is told to log in; registration never
// starts a session by itself.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	if err := a.auth.SubmitRegistration(ctx, name, email, password); err != nil {
		printlnFn(api.Message(err, "Registration failed"))
		return err
	}

	printlnFn("Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// session store is populated and the prompt reflects the signed-in user.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	if err := a.auth.SubmitLogin(ctx, email, password); err != nil {
		printlnFn(api.Message(err, "Login failed"))
		return err
	}

	printlnFn("Logged in.")
	return nil
}

// Logout ends the session. The local session is cleared even when the
// server call fails.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// WhoAmI refreshes and prints the current profile.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}

	if err := a.store.RefreshProfile(ctx); err != nil {
		printlnFn(api.Message(err, "Could not load profile"))
		return err
	}

	snap := a.store.Snapshot()
	if snap.Profile == nil {
		printlnFn("Not signed in.")
		return nil
	}

	verified := "no"
	if snap.Profile.EmailVerified {
		verified = "yes"
	}
	printlnFn(fmt.Sprintf("Name: %s\nEmail: %s\nVerified: %s", snap.Profile.Name, snap.Profile.Email, verified))
	return nil
}
