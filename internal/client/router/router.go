package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/gorilla/mux"
)

// maxHops bounds the redirect chain of a single navigation.
const maxHops = 4

var (
	ErrRouteNotFound = errors.New("route not found")
	ErrRedirectLoop  = errors.New("too many redirects")
)

// AuthStatus reports the live authentication state.
type AuthStatus interface {
	IsAuthenticated() bool
}

// Location is a realized navigation target.
type Location struct {
	Route  Route
	Path   string
	Params map[string]string
}

// Param returns a path parameter, or "".
func (l Location) Param(name string) string {
	return l.Params[name]
}

// View renders a realized location.
type View func(ctx context.Context, loc Location) error

// Router resolves paths, applies Guard and renders bound views. It keeps
// a single current location; redirects replace it rather than stacking.
type Router struct {
	mux    *mux.Router
	byName map[string]Route
	auth   AuthStatus
	logger logging.Logger

	mu      sync.Mutex
	views   map[string]View
	current *Location
}

type Option func(*Router)

func WithLogger(l logging.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// New builds a router over the static route table.
func New(auth AuthStatus, opts ...Option) *Router {
	r := &Router{
		mux:    mux.NewRouter(),
		byName: make(map[string]Route),
		auth:   auth,
		logger: logging.Nop(),
		views:  make(map[string]View),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, rt := range table {
		key := rt.Name
		if key == "" {
			key = fmt.Sprintf("alias-%d", i)
		}
		r.byName[key] = rt
		r.mux.NewRoute().Path(muxTemplate(rt.Path)).Name(key)
	}
	return r
}

// Bind attaches the view rendered when the named route is realized.
func (r *Router) Bind(name string, v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[name] = v
}

// Resolve matches path against the route table without navigating. Any
// query or fragment on path is ignored.
func (r *Router) Resolve(path string) (Location, error) {
	u, err := url.Parse(path)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return Location{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	clean := u.Path
	if clean == "" {
		clean = PathRoot
	}
	if len(clean) > 1 {
		clean = strings.TrimRight(clean, "/")
	}
	if !strings.HasPrefix(clean, "/") {
		clean = "/" + clean
	}

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: clean}}
	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.Route == nil {
		return Location{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	return Location{
		Route:  r.byName[m.Route.GetName()],
		Path:   clean,
		Params: m.Vars,
	}, nil
}

// Navigate moves to path. The guard runs against the live session for the
// target and every redirect it produces; the location that finally passes
// is recorded and its view rendered. The returned error is a resolution
// failure or the view's own error.
func (r *Router) Navigate(ctx context.Context, path string) error {
	loc, err := r.realize(ctx, path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.current = &loc
	view := r.views[loc.Route.Name]
	r.mu.Unlock()

	if view == nil {
		return nil
	}
	return view(ctx, loc)
}

func (r *Router) realize(ctx context.Context, path string) (Location, error) {
	target := path
	for hop := 0; hop <= maxHops; hop++ {
		loc, err := r.Resolve(target)
		if err != nil {
			return Location{}, err
		}

		if loc.Route.RedirectTo != "" {
			target = loc.Route.RedirectTo
			continue
		}

		d := Guard(loc.Route, r.auth.IsAuthenticated())
		if d.Allow {
			if target != path {
				r.logger.Debug(ctx, "navigation redirected", "from", path, "to", loc.Path)
			}
			return loc, nil
		}
		target = d.Redirect
	}
	return Location{}, fmt.Errorf("%w: %s", ErrRedirectLoop, path)
}

// Current returns the realized location, if any.
func (r *Router) Current() (Location, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return Location{}, false
	}
	return *r.current, true
}

// Reload navigates to the current location again. Without one it goes to
// the root.
func (r *Router) Reload(ctx context.Context) error {
	path := PathRoot
	if cur, ok := r.Current(); ok {
		path = cur.Path
	}
	return r.Navigate(ctx, path)
}
