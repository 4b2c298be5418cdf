package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/api"
	"github.com/dmitrijs2005/bookshelf/internal/client/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeAPI struct {
	registerResp *api.MessageResponse
	registerErr  error
	loginResp    *api.LoginResponse
	loginErr     error

	lastForm api.Form
	// seen captures the store status while the call is in flight.
	seen Status
	s    *Store
}

func (f *fakeAPI) Register(_ context.Context, form api.Form) (*api.MessageResponse, error) {
	f.lastForm = form
	if f.s != nil {
		f.seen = f.s.Status()
	}
	return f.registerResp, f.registerErr
}

func (f *fakeAPI) Login(_ context.Context, form api.Form) (*api.LoginResponse, error) {
	f.lastForm = form
	if f.s != nil {
		f.seen = f.s.Status()
	}
	return f.loginResp, f.loginErr
}

type memTokens struct {
	value   string
	present bool

	loadErr, saveErr, removeErr error
	removed                     int
}

func (m *memTokens) Load(context.Context) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.value, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.value, m.present = token, true
	return nil
}

func (m *memTokens) Remove(context.Context) error {
	m.removed++
	if m.removeErr != nil {
		return m.removeErr
	}
	m.value, m.present = "", false
	return nil
}

type fakeNav struct {
	paths []string
	err   error
}

func (n *fakeNav) Navigate(_ context.Context, path string) error {
	n.paths = append(n.paths, path)
	return n.err
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newStore(t *testing.T, a *fakeAPI, tokens *memTokens) (*Store, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	s := New(context.Background(), a, tokens, WithClock(c.now))
	a.s = s
	return s, c
}

// ---- construction ----

func TestNew_HydratesPersistedToken(t *testing.T) {
	s, _ := newStore(t, &fakeAPI{}, &memTokens{value: "persisted", present: true})

	assert.Equal(t, "persisted", s.Token())
	assert.True(t, s.IsAuthenticated())
	assert.Nil(t, s.User(), "profile is not persisted")
}

func TestNew_StorageErrorMeansNoToken(t *testing.T) {
	s, _ := newStore(t, &fakeAPI{}, &memTokens{loadErr: errors.New("disk")})

	assert.Empty(t, s.Token())
	assert.False(t, s.IsAuthenticated())
}

// ---- login ----

func TestLogin_Success(t *testing.T) {
	a := &fakeAPI{loginResp: &api.LoginResponse{
		AccessToken: "T",
		Token:       "T",
		User:        &api.User{ID: 1, Name: "Ann"},
	}}
	tokens := &memTokens{}
	s, c := newStore(t, a, tokens)

	ok := s.Login(context.Background(), api.Form{"user": "a", "pass": "b"})
	require.True(t, ok)

	assert.Equal(t, api.Form{"user": "a", "pass": "b"}, a.lastForm)
	assert.True(t, a.seen.Loading, "loading while the call is in flight")

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "T", s.Token())
	assert.Equal(t, &api.User{ID: 1, Name: "Ann"}, s.User())
	assert.Equal(t, "T", tokens.value)

	st := s.Status()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Equal(t, LoggedInMessage, s.Message())

	c.t = c.t.Add(NoticeTTL - time.Millisecond)
	assert.Equal(t, LoggedInMessage, s.Message())
	c.t = c.t.Add(time.Millisecond)
	assert.Empty(t, s.Message(), "login notice expires after the TTL")
}

func TestLogin_KeepsAccessTokenAndPersistedTokenApart(t *testing.T) {
	a := &fakeAPI{loginResp: &api.LoginResponse{AccessToken: "memory", Token: "disk"}}
	tokens := &memTokens{}
	s, _ := newStore(t, a, tokens)

	require.True(t, s.Login(context.Background(), api.Form{}))

	assert.Equal(t, "memory", s.Token())
	assert.Equal(t, "disk", tokens.value)
}

func TestLogin_MissingTokenFieldClearsPersisted(t *testing.T) {
	a := &fakeAPI{loginResp: &api.LoginResponse{AccessToken: "memory"}}
	tokens := &memTokens{value: "old", present: true}
	s, _ := newStore(t, a, tokens)

	require.True(t, s.Login(context.Background(), api.Form{}))

	assert.Equal(t, "memory", s.Token())
	assert.False(t, tokens.present)
}

func TestLogin_PersistFailureStillSucceeds(t *testing.T) {
	a := &fakeAPI{loginResp: &api.LoginResponse{AccessToken: "T", Token: "T"}}
	s, _ := newStore(t, a, &memTokens{saveErr: errors.New("read-only")})

	assert.True(t, s.Login(context.Background(), api.Form{}))
	assert.True(t, s.IsAuthenticated())
	assert.Empty(t, s.Status().Error)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		resp    *api.LoginResponse
		err     error
		wantErr string
	}{
		{
			name: "validation in document order",
			err: &api.ValidationError{Fields: []api.FieldError{
				{Field: "password", Messages: []string{"too short"}},
				{Field: "email", Messages: []string{"invalid"}},
			}},
			wantErr: "too short\ninvalid",
		},
		{
			name:    "validation without fields",
			err:     &api.ValidationError{Message: "The given data was invalid."},
			wantErr: "The given data was invalid.",
		},
		{
			name:    "status with server message",
			err:     &api.StatusError{Code: 401, Message: "Invalid credentials"},
			wantErr: "Invalid credentials",
		},
		{
			name:    "status without message",
			err:     &api.StatusError{Code: 500},
			wantErr: "Login failed",
		},
		{
			name:    "transport",
			err:     fmt.Errorf("POST /login: %w: dial tcp: refused", api.ErrTransport),
			wantErr: "An unexpected error occurred during login.",
		},
		{
			name:    "malformed error body",
			err:     fmt.Errorf("status 500: %w: malformed body", api.ErrTransport),
			wantErr: "An unexpected error occurred during login.",
		},
		{
			name:    "2xx without access token",
			resp:    &api.LoginResponse{Token: "T"},
			wantErr: "An unexpected error occurred during login.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAPI{loginResp: tt.resp, loginErr: tt.err}
			tokens := &memTokens{value: "prev", present: true}
			s, _ := newStore(t, a, tokens)

			ok := s.Login(context.Background(), api.Form{})
			assert.False(t, ok)

			st := s.Status()
			assert.Equal(t, tt.wantErr, st.Error)
			assert.False(t, st.Loading)
			assert.Empty(t, s.Message())

			assert.Equal(t, "prev", s.Token(), "session is left untouched")
			assert.Equal(t, "prev", tokens.value)
		})
	}
}

func TestLogin_ResetsPreviousStatus(t *testing.T) {
	a := &fakeAPI{loginErr: &api.StatusError{Code: 401, Message: "nope"}}
	s, _ := newStore(t, a, &memTokens{})
	ctx := context.Background()

	require.False(t, s.Login(ctx, api.Form{}))
	require.Equal(t, "nope", s.Status().Error)

	a.loginErr = nil
	a.loginResp = &api.LoginResponse{AccessToken: "T", Token: "T"}
	require.True(t, s.Login(ctx, api.Form{}))

	assert.Empty(t, s.Status().Error)
	assert.Empty(t, a.seen.Error, "error is cleared when the next call starts")
}

// ---- register ----

func TestRegister_Success(t *testing.T) {
	a := &fakeAPI{registerResp: &api.MessageResponse{}}
	s, c := newStore(t, a, &memTokens{})

	require.True(t, s.Register(context.Background(), api.Form{"name": "Ann"}))

	assert.True(t, a.seen.Loading)
	assert.Equal(t, RegisteredMessage, s.Message())
	assert.False(t, s.IsAuthenticated(), "registering does not log in")

	c.t = c.t.Add(time.Hour)
	assert.Equal(t, RegisteredMessage, s.Message(), "register notice does not expire")
}

func TestRegister_ServerMessageDoesNotReplaceNotice(t *testing.T) {
	a := &fakeAPI{registerResp: &api.MessageResponse{Message: "User created"}}
	s, _ := newStore(t, a, &memTokens{})

	require.True(t, s.Register(context.Background(), api.Form{}))
	assert.Equal(t, RegisteredMessage, s.Message())
}

func TestRegister_NetworkFailure(t *testing.T) {
	a := &fakeAPI{registerErr: fmt.Errorf("%w: timeout", api.ErrTransport)}
	s, _ := newStore(t, a, &memTokens{})

	assert.False(t, s.Register(context.Background(), api.Form{}))

	st := s.Status()
	assert.Equal(t, "An unexpected error occurred during registration.", st.Error)
	assert.False(t, st.Loading)
	assert.False(t, st.Notice.Active(time.Now()))
}

func TestRegister_MalformedErrorBody(t *testing.T) {
	a := &fakeAPI{registerErr: fmt.Errorf("status 502: %w: malformed body", api.ErrTransport)}
	s, _ := newStore(t, a, &memTokens{})

	assert.False(t, s.Register(context.Background(), api.Form{}))
	assert.Equal(t, "An unexpected error occurred during registration.", s.Status().Error)
}

func TestStatus_SeqAdvancesPerOperation(t *testing.T) {
	a := &fakeAPI{loginErr: &api.StatusError{Code: 401, Message: "Invalid credentials"}}
	s, _ := newStore(t, a, &memTokens{})
	ctx := context.Background()

	require.False(t, s.Login(ctx, api.Form{}))
	first := s.Status()
	require.False(t, s.Login(ctx, api.Form{}))
	second := s.Status()

	assert.Equal(t, first.Error, second.Error)
	assert.Greater(t, second.Seq, first.Seq, "identical outcomes are still distinct operations")

	s.Logout(ctx)
	assert.Greater(t, s.Status().Seq, second.Seq)
}

func TestRegister_RejectedWithoutMessage(t *testing.T) {
	a := &fakeAPI{registerErr: &api.StatusError{Code: 409}}
	s, _ := newStore(t, a, &memTokens{})

	assert.False(t, s.Register(context.Background(), api.Form{}))
	assert.Equal(t, "Registration failed", s.Status().Error)
}

// ---- logout ----

func TestLogout(t *testing.T) {
	a := &fakeAPI{loginResp: &api.LoginResponse{AccessToken: "T", Token: "T", User: &api.User{ID: 1}}}
	tokens := &memTokens{}
	s, c := newStore(t, a, tokens)
	nav := &fakeNav{}
	s.AttachNavigator(nav)
	ctx := context.Background()

	require.True(t, s.Login(ctx, api.Form{}))
	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	assert.False(t, tokens.present)
	assert.Equal(t, []string{router.PathLogin}, nav.paths)
	assert.Equal(t, LoggedOutMessage, s.Message())

	c.t = c.t.Add(NoticeTTL)
	assert.Empty(t, s.Message())
}

func TestLogout_NeverFails(t *testing.T) {
	tokens := &memTokens{value: "T", present: true, removeErr: errors.New("locked")}
	s, _ := newStore(t, &fakeAPI{}, tokens)
	nav := &fakeNav{err: errors.New("no view")}
	s.AttachNavigator(nav)

	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 1, tokens.removed)
	assert.Len(t, nav.paths, 1)
}

func TestLogout_WithoutNavigator(t *testing.T) {
	s, _ := newStore(t, &fakeAPI{}, &memTokens{value: "T", present: true})
	s.Logout(context.Background())
	assert.False(t, s.IsAuthenticated())
}

// ---- notice ----

func TestNotice_Active(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, Notice{}.Active(at))
	assert.True(t, Notice{Text: "x", CreatedAt: at}.Active(at.Add(24*time.Hour)))

	n := Notice{Text: "x", CreatedAt: at, TTL: time.Second}
	assert.True(t, n.Active(at))
	assert.False(t, n.Active(at.Add(time.Second)))

	assert.Equal(t, "x", Status{Notice: n}.Message(at))
	assert.Empty(t, Status{Notice: n}.Message(at.Add(2*time.Second)))
}
