package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/router"
)

// Borrow opens the borrow view for id and, once the book is shown, asks
// for confirmation before borrowing it.
func (a *App) Borrow(ctx context.Context, id string) error {
	if id == "" {
		fmt.Fprintln(a.out, "Usage: borrow <book id>")
		return nil
	}
	if err := a.Go(ctx, router.BorrowPath(id)); err != nil {
		return err
	}
	if !a.at(router.NameBorrowBooks) {
		return nil
	}

	ok, err := Confirm(a.reader, "Borrow this book?", a.out)
	if err != nil || !ok {
		return err
	}

	loan, err := a.books.Borrow(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}

	msg := "Book borrowed."
	if loan != nil && loan.DueDate != "" {
		msg += " Due " + loan.DueDate + "."
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Return without an id shows the borrowed books. With an id it returns
// that book and refreshes the list.
func (a *App) Return(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" || !a.isLoggedIn() {
		return a.Go(ctx, router.PathReturnBooks)
	}

	msg, err := a.books.Return(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}
	if msg == "" {
		msg = "Book returned."
	}
	fmt.Fprintln(a.out, msg)
	return a.Go(ctx, router.PathReturnBooks)
}
