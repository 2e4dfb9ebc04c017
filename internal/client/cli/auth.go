package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fintrack/internal/client/session"
	"github.com/dmitrijs2005/fintrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
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
	defer common.WipeByteArray(password)

	if _, err := a.api.Register(ctx, name, email, string(password)); err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

// Login authenticates against the server and stores the session locally.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return a.report(ctx, err)
	}

	s := session.Session{
		Token: res.Token,
		User:  session.User{ID: res.User.ID, Name: res.User.Name, Email: res.User.Email},
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return a.report(ctx, err)
	}
	a.user = &s.User

	fmt.Fprintf(a.out, "Logged in as %s\n", s.User.Name)
	return nil
}

// Logout forgets the local session. Tokens are stateless, so the server is
// not contacted.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return a.report(ctx, err)
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.api.Profile(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s\n", u.Name, u.Email, u.ID)
	return nil
}

var errUsage = errors.New("usage")

// needID returns args[0] or prints usage.
func (a *App) needID(args []string, usage string) (string, error) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return "", errUsage
	}
	return args[0], nil
}
