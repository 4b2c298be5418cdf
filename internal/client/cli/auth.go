package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/client/router"
	"github.com/dmitrijs2005/bookshelf/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register opens the register view and, if the guard lets the user in,
// collects and validates the form before submitting it. A successful
// registration moves on to the login view.
func (a *App) Register(ctx context.Context) error {
	if err := a.Go(ctx, router.PathRegister); err != nil {
		return err
	}
	if !a.at(router.NameRegister) {
		return nil
	}

	var f RegisterForm
	var err error
	if f.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirmation, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)
	f.Password, f.PasswordConfirmation = string(password), string(confirmation)

	if err := f.Validate(); err != nil {
		fmt.Fprintln(a.out, "Invalid form:", err)
		return err
	}

	if !a.store.Register(ctx, f.toAPI()) {
		return nil
	}
	return a.Go(ctx, router.PathLogin)
}

// Login opens the login view and, if the guard lets the user in, asks for
// credentials. A successful login moves on to the catalog.
func (a *App) Login(ctx context.Context) error {
	if err := a.Go(ctx, router.PathLogin); err != nil {
		return err
	}
	if !a.at(router.NameLogin) {
		return nil
	}

	var f LoginForm
	var err error
	if f.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	f.Password = string(password)

	if err := f.Validate(); err != nil {
		fmt.Fprintln(a.out, "Invalid credentials:", err)
		return err
	}

	if !a.store.Login(ctx, f.toAPI()) {
		return nil
	}
	a.flush()
	return a.Go(ctx, router.PathBooks)
}

// Logout ends the session; the store moves back to the login view.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	return nil
}
