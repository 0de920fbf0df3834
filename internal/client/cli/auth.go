package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookmarks/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintln(a.out, "User registered successfully")
	return nil
}

// Login authenticates, stores the session and pulls the user's bookmarks
// into the mirror.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		a.report(err)
		return err
	}

	a.session = sess
	fmt.Fprintf(a.out, "Logged in as %s\n", sess.UserName)
	a.refreshMirror(ctx)
	return nil
}

// Logout forgets the session and the mirror.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.report(err)
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	userID, err := a.authService.WhoAmI(ctx)
	if err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintf(a.out, "Logged in, user id %s\n", userID)
	return nil
}
