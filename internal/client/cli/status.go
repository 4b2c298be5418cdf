package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/session"
)

// Status prints a summary of the current session.
func (a *App) Status(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	if u := a.store.User(); u != nil {
		fmt.Fprintf(a.out, "User:    %s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	} else {
		fmt.Fprintln(a.out, "User:    restored session, profile not loaded")
	}

	claims, err := a.store.Claims()
	switch {
	case errors.Is(err, session.ErrOpaqueToken):
		fmt.Fprintln(a.out, "Token:   opaque")
	case err != nil:
		return a.report(ctx, err)
	default:
		fmt.Fprintf(a.out, "Token:   subject %s\n", claims.Subject)
		if !claims.ExpiresAt.IsZero() {
			state := "valid"
			if claims.Expired(time.Now()) {
				state = "expired"
			}
			fmt.Fprintf(a.out, "Expires: %s (%s)\n", claims.ExpiresAt.Local().Format(time.RFC1123), state)
		}
	}

	if a.tokens == nil {
		return nil
	}
	savedAt, err := a.tokens.SavedAt(ctx)
	if err != nil {
		a.logger.Debug(ctx, "token saved-at unavailable", "error", err)
		return nil
	}
	fmt.Fprintf(a.out, "Saved:   %s\n", savedAt.Local().Format(time.RFC1123))
	return nil
}
