package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dsmolyakov/jobdeck/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// register prompts for name, email and password and creates an account.
// The backend logs the new user in directly, so on success the session is
// established and the prompt moves to the jobs listing.
func (a *App) register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	a.userName = user.Name
	fmt.Printf("Welcome, %s!\n", user.Name)
	return nil
}

// login prompts for credentials and authenticates. On success the auth
// service persists the session and navigates to the jobs listing.
func (a *App) login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.userName = user.Name
	fmt.Printf("Welcome back, %s!\n", user.Name)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.lastJobs = nil
	fmt.Println("Logged out.")
	return nil
}

// whoami prints the cached profile snapshot without a network call.
func (a *App) whoami(ctx context.Context) error {
	sess, err := a.store.Read(ctx)
	if err != nil {
		return err
	}
	if sess.User == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}
