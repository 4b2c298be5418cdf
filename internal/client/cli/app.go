package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookshelf/internal/client/router"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/client/storage"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// tokenInfo exposes persisted-token details for the status command.
type tokenInfo interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

type App struct {
	store  *session.Store
	router *router.Router
	books  services.BookService
	tokens tokenInfo
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB

	// shownSeq is the last store operation reported to the user.
	shownSeq uint64
}

// NewApp opens local storage and wires the API client, session store,
// router and catalog service.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath, storage.WithLogger(logger))
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := api.New(c.APIBaseURL, api.WithTimeout(c.RequestTimeout), api.WithLogger(logger))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	tokens := metadata.NewTokenStore(db)
	store := session.New(ctx, apiClient, tokens, session.WithLogger(logger))
	books := services.NewBookService(apiClient, store)

	a := assemble(store, books, tokens, bufio.NewReader(os.Stdin), os.Stdout, logger)
	a.db = db
	return a, nil
}

// assemble builds the router around store and binds the views.
func assemble(store *session.Store, books services.BookService, tokens tokenInfo,
	reader *bufio.Reader, out io.Writer, logger logging.Logger) *App {
	a := &App{
		store:  store,
		books:  books,
		tokens: tokens,
		logger: logger,
		reader: reader,
		out:    out,
	}
	a.router = router.New(store, router.WithLogger(logger))
	store.AttachNavigator(a.router)
	a.bindViews()
	return a
}

// Run shows the entry location and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	_ = a.Go(ctx, router.PathRoot)
	a.flush()
	runREPL(ctx, a, a.prompt, a.reader)
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error(context.Background(), "close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

// prompt renders "<location> (<who>)".
func (a *App) prompt() string {
	where := "-"
	if cur, ok := a.router.Current(); ok {
		where = cur.Path
	}

	who := "guest"
	if a.isLoggedIn() {
		who = "signed in"
		if u := a.store.User(); u != nil && u.Name != "" {
			who = u.Name
		}
	}
	return fmt.Sprintf("%s (%s)", where, who)
}

// Go navigates to path.
func (a *App) Go(ctx context.Context, path string) error {
	return a.report(ctx, a.router.Navigate(ctx, path))
}

// at reports whether the router realized the named route.
func (a *App) at(name string) bool {
	cur, ok := a.router.Current()
	return ok && cur.Route.Name == name
}

// flush prints the error or active notice of the latest store operation,
// once per operation.
func (a *App) flush() {
	st := a.store.Status()
	if st.Seq == a.shownSeq {
		return
	}
	a.shownSeq = st.Seq

	switch {
	case st.Error != "":
		fmt.Fprintln(a.out, "Error:", st.Error)
	default:
		if msg := a.store.Message(); msg != "" {
			fmt.Fprintln(a.out, msg)
		}
	}
}

// report prints a user-facing line for err and returns it. An expired
// session is logged out.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	a.logger.Debug(ctx, "command failed", "error", err)

	var (
		ve *api.ValidationError
		se *api.StatusError
	)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
		a.store.Logout(ctx)
	case errors.Is(err, common.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Please log in first.")
	case errors.Is(err, common.ErrEmptyInput):
		fmt.Fprintln(a.out, "A book id is required.")
	case errors.Is(err, router.ErrRouteNotFound):
		fmt.Fprintln(a.out, "Unknown location. Known:", knownPaths())
	case errors.As(err, &ve):
		fmt.Fprintln(a.out, "Error:", ve.Error())
	case errors.As(err, &se) && se.Message != "":
		fmt.Fprintln(a.out, "Error:", se.Message)
	case errors.Is(err, api.ErrTransport):
		fmt.Fprintln(a.out, "Unable to reach the library service.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

func knownPaths() string {
	var s string
	for _, r := range router.Routes() {
		if r.Name == "" {
			continue
		}
		if s != "" {
			s += " "
		}
		s += r.Path
	}
	return s
}
