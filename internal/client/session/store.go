package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	"github.com/dmitrijs2005/bookshelf/internal/client/router"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

const (
	RegisteredMessage = "Registration successful! Please login."
	LoggedInMessage   = "Login successful!"
	LoggedOutMessage  = "Logged out successfully."
)

// operation holds the user-facing fallbacks of one store action.
type operation struct {
	name       string
	rejected   string
	unexpected string
}

var (
	opRegister = operation{
		name:       "register",
		rejected:   "Registration failed",
		unexpected: "An unexpected error occurred during registration.",
	}
	opLogin = operation{
		name:       "login",
		rejected:   "Login failed",
		unexpected: "An unexpected error occurred during login.",
	}
)

// AuthAPI is the part of the library API the store calls.
type AuthAPI interface {
	Register(ctx context.Context, form api.Form) (*api.MessageResponse, error)
	Login(ctx context.Context, credentials api.Form) (*api.LoginResponse, error)
}

// TokenStorage persists the session token across restarts.
type TokenStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// Navigator moves the client to another location.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// Store is the session state of the running client. It is safe for
// concurrent use.
type Store struct {
	api    AuthAPI
	tokens TokenStorage
	logger logging.Logger
	now    func() time.Time

	mu     sync.RWMutex
	nav    Navigator
	token  string
	user   *api.User
	status Status
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now for notice timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithNavigator(n Navigator) Option {
	return func(s *Store) { s.nav = n }
}

// New builds a Store and hydrates its token from tokens. A storage read
// failure is logged and leaves the session unauthenticated.
func New(ctx context.Context, authAPI AuthAPI, tokens TokenStorage, opts ...Option) *Store {
	s := &Store{
		api:    authAPI,
		tokens: tokens,
		logger: logging.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	token, err := tokens.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "load persisted token", "error", err)
		token = ""
	}
	s.token = token
	return s
}

// AttachNavigator sets the navigator used by Logout. The router needs the
// store to evaluate its guard, so it is usually attached after both exist.
func (s *Store) AttachNavigator(n Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = n
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the profile, or nil when none is loaded. After a
// restart the token may be present without a profile.
func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Message returns the currently active notice text.
func (s *Store) Message() string {
	return s.Status().Message(s.now())
}

// begin resets the status for a new operation.
func (s *Store) begin() {
	s.mu.Lock()
	s.status = Status{Seq: s.status.Seq + 1, Loading: true}
	s.mu.Unlock()
}

// finish applies fn under the lock and ends the loading phase.
func (s *Store) finish(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.status.Loading = false
}

func (s *Store) fail(ctx context.Context, op operation, err error) {
	msg := op.describe(err)
	s.logger.Warn(ctx, op.name+" failed", "error", err)
	s.finish(func() { s.status.Error = msg })
}

// Register submits form. On success RegisteredMessage is kept as a notice
// until the next operation; the server's own message is only logged.
func (s *Store) Register(ctx context.Context, form api.Form) bool {
	s.begin()

	resp, err := s.api.Register(ctx, form)
	if err != nil {
		s.fail(ctx, opRegister, err)
		return false
	}

	var serverMsg string
	if resp != nil {
		serverMsg = resp.Message
	}
	now := s.now()
	s.finish(func() { s.status.Notice = Notice{Text: RegisteredMessage, CreatedAt: now} })
	s.logger.Info(ctx, "registration submitted", "server_message", serverMsg)
	return true
}

// Login authenticates with credentials. On success the access_token field
// becomes the in-memory token while the token field is what gets
// persisted; the response carries both and they are kept apart. On failure
// the previous session is left as it was.
func (s *Store) Login(ctx context.Context, credentials api.Form) bool {
	s.begin()

	resp, err := s.api.Login(ctx, credentials)
	if err == nil && (resp == nil || resp.AccessToken == "") {
		err = fmt.Errorf("%w: login response without access_token", api.ErrTransport)
	}
	if err != nil {
		s.fail(ctx, opLogin, err)
		return false
	}

	if resp.Token != "" {
		if err := s.tokens.Save(ctx, resp.Token); err != nil {
			s.logger.Error(ctx, "persist token", "error", err)
		}
	} else {
		s.logger.Warn(ctx, "login response without token field, nothing persisted")
		if err := s.tokens.Remove(ctx); err != nil {
			s.logger.Error(ctx, "remove stale token", "error", err)
		}
	}

	now := s.now()
	s.finish(func() {
		s.token = resp.AccessToken
		s.user = resp.User
		s.status.Notice = Notice{Text: LoggedInMessage, CreatedAt: now, TTL: NoticeTTL}
	})

	if resp.User != nil {
		s.logger.Info(ctx, "logged in", "user_id", resp.User.ID)
	} else {
		s.logger.Info(ctx, "logged in")
	}
	return true
}

// Logout drops the session, removes the persisted token and navigates to
// the login view. Storage and navigation errors are logged, never returned.
func (s *Store) Logout(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = Status{
		Seq:    s.status.Seq + 1,
		Notice: Notice{Text: LoggedOutMessage, CreatedAt: now, TTL: NoticeTTL},
	}
	nav := s.nav
	s.mu.Unlock()

	if err := s.tokens.Remove(ctx); err != nil {
		s.logger.Error(ctx, "remove persisted token", "error", err)
	}

	if nav == nil {
		return
	}
	if err := nav.Navigate(ctx, router.PathLogin); err != nil {
		s.logger.Error(ctx, "navigate after logout", "error", err)
	}
}

// describe turns an API error into the single user-facing string kept in
// Status.Error.
func (op operation) describe(err error) string {
	if errors.Is(err, api.ErrTransport) {
		return op.unexpected
	}

	var ve *api.ValidationError
	if errors.As(err, &ve) {
		if msgs := ve.Messages(); len(msgs) > 0 {
			return strings.Join(msgs, "\n")
		}
		if ve.Message != "" {
			return ve.Message
		}
		return op.rejected
	}

	var se *api.StatusError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return op.rejected
	}

	return op.unexpected
}
