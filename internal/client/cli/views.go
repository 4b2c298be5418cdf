package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	"github.com/dmitrijs2005/bookshelf/internal/client/router"
)

func (a *App) bindViews() {
	a.router.Bind(router.NameLogin, a.viewLogin)
	a.router.Bind(router.NameRegister, a.viewRegister)
	a.router.Bind(router.NameBooks, a.viewBooks)
	a.router.Bind(router.NameReturnBooks, a.viewReturnBooks)
	a.router.Bind(router.NameBorrowBooks, a.viewBorrowBook)
}

func (a *App) heading(title string) {
	fmt.Fprintf(a.out, "== %s ==\n", title)
}

func (a *App) viewLogin(context.Context, router.Location) error {
	a.heading("Login")
	fmt.Fprintln(a.out, "Type 'login' to sign in or 'register' to create an account.")
	return nil
}

func (a *App) viewRegister(context.Context, router.Location) error {
	a.heading("Register")
	return nil
}

func (a *App) viewBooks(ctx context.Context, _ router.Location) error {
	a.heading("Books")
	books, err := a.books.List(ctx)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Fprintln(a.out, "The catalog is empty.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tSTATUS")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", b.ID, b.Title, b.Author, availability(b))
	}
	return tw.Flush()
}

func (a *App) viewReturnBooks(ctx context.Context, _ router.Location) error {
	a.heading("Borrowed books")
	loans, err := a.books.Borrowed(ctx)
	if err != nil {
		return err
	}
	if len(loans) == 0 {
		fmt.Fprintln(a.out, "You have no borrowed books.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BOOK\tTITLE\tBORROWED\tDUE")
	for _, l := range loans {
		title := ""
		if l.Book != nil {
			title = l.Book.Title
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", l.BookID, title, l.BorrowedAt, l.DueDate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Type 'return <book id>' to return a book.")
	return nil
}

func (a *App) viewBorrowBook(ctx context.Context, loc router.Location) error {
	a.heading("Borrow")
	b, err := a.books.Get(ctx, loc.Param("id"))
	if err != nil {
		return err
	}
	a.printBook(b)
	return nil
}

func (a *App) printBook(b *api.Book) {
	fmt.Fprintf(a.out, "#%d %s\n", b.ID, b.Title)
	fmt.Fprintf(a.out, "  by %s\n", b.Author)
	if b.ISBN != "" {
		fmt.Fprintf(a.out, "  ISBN %s\n", b.ISBN)
	}
	if b.PublishedYear != 0 {
		fmt.Fprintf(a.out, "  published %d\n", b.PublishedYear)
	}
	fmt.Fprintf(a.out, "  %s\n", availability(*b))
}

func availability(b api.Book) string {
	if b.Available {
		return "available"
	}
	return "on loan"
}
