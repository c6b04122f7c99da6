package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/cli/credential"
	"github.com/yndnr/spot-go/internal/core/domain"
	"github.com/yndnr/spot-go/internal/telemetry/logger"
	"github.com/yndnr/spot-go/internal/telemetry/metric"
	"github.com/yndnr/spot-go/pkg/token"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = domain.ErrNotAuthenticated

// ErrIncompleteResponse is the cause of a 2xx auth response that lacks
// the token or the user.
var ErrIncompleteResponse = errors.New("session: auth response has no token or user")

// incomplete is the normalized error for an unusable 2xx auth payload.
func incomplete(status int) error {
	return &connection.APIError{
		Kind:    connection.KindServer,
		Message: connection.MsgRequestFailed,
		Status:  status,
		Cause:   ErrIncompleteResponse,
	}
}

// Authenticator talks to the auth endpoints.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.LoginResult, error)
	Profile(ctx context.Context) (domain.User, error)
}

// Hook runs after a transition. Hooks must not call back into the Manager.
type Hook func(ctx context.Context, t Transition) error

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. The default is logger.Default().
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// WithMetrics counts transitions by reason.
func WithMetrics(cm *metric.ClientMetrics) Option {
	return func(m *Manager) {
		m.metrics = cm
	}
}

// WithExpiryCheck skips the profile fetch for saved JWTs whose exp claim
// has passed. Opaque tokens are always checked with the server.
func WithExpiryCheck(enabled bool) Option {
	return func(m *Manager) {
		m.checkExpiry = enabled
	}
}

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Manager is the session state machine.
type Manager struct {
	// op serializes Bootstrap, Login, Logout and Sync.
	op sync.Mutex

	mu   sync.RWMutex
	snap Snapshot

	tokens      *connection.TokenStore
	auth        Authenticator
	store       credential.Store
	hooks       []Hook
	log         logger.Logger
	metrics     *metric.ClientMetrics
	checkExpiry bool
	now         func() time.Time
}

// NewManager creates a Manager in the initial state: unauthenticated and
// loading until Bootstrap completes. The persistence hook for store is
// registered before any other hook.
func NewManager(tokens *connection.TokenStore, auth Authenticator, store credential.Store, opts ...Option) *Manager {
	m := &Manager{
		snap:   Snapshot{State: StateUnauthenticated, Loading: true},
		tokens: tokens,
		auth:   auth,
		store:  store,
		log:    logger.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.hooks = append(m.hooks, PersistHook(store))
	return m
}

// OnTransition registers h to run after every later transition.
func (m *Manager) OnTransition(h Hook) {
	m.op.Lock()
	defer m.op.Unlock()
	m.hooks = append(m.hooks, h)
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// IsAuthenticated reports whether a token and a user are both held.
func (m *Manager) IsAuthenticated() bool {
	return m.Snapshot().IsAuthenticated()
}

// User returns the signed-in user or ErrNotAuthenticated.
func (m *Manager) User() (domain.User, error) {
	snap := m.Snapshot()
	if !snap.IsAuthenticated() {
		return domain.User{}, ErrNotAuthenticated
	}
	return *snap.User, nil
}

// Bootstrap restores a saved session. Without a saved token it settles
// in Unauthenticated without any network call. With one, it fetches the
// profile; a failed fetch clears the token and the saved credential.
// Either way Loading ends false.
//
// The returned error is non-nil only when the saved credential could not
// be read; the session is then Unauthenticated and the credential is kept.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.op.Lock()
	defer m.op.Unlock()

	saved, err := m.store.Load(ctx)
	if err != nil {
		m.tokens.Clear()
		m.transition(ctx, Snapshot{State: StateUnauthenticated}, ReasonNoCredential)
		if errors.Is(err, credential.ErrNotFound) {
			return nil
		}
		m.log.Warn("saved credential unreadable", "error", err)
		return err
	}

	return m.restore(ctx, saved)
}

// restore validates saved with the server. It must be called with op held.
func (m *Manager) restore(ctx context.Context, saved string) error {
	if m.checkExpiry && token.Expired(saved, m.now(), 0) {
		m.log.Info("session not valid", "reason", "token expired")
		m.tokens.Clear()
		m.transition(ctx, Snapshot{State: StateUnauthenticated}, ReasonExpired)
		return nil
	}

	m.tokens.Set(saved)
	m.transition(ctx, Snapshot{State: StateRestoring, Token: saved, Loading: true}, ReasonRestoring)

	user, err := m.auth.Profile(ctx)
	if err == nil && !user.Valid() {
		err = incomplete(http.StatusOK)
	}
	if err != nil {
		m.tokens.Clear()
		if errors.Is(err, context.Canceled) {
			m.transition(ctx, Snapshot{State: StateUnauthenticated}, ReasonRestoreAborted)
			return err
		}
		m.log.Info("session not valid", "error", connection.Message(err))
		m.transition(ctx, Snapshot{State: StateUnauthenticated}, ReasonRestoreFailed)
		return nil
	}

	m.transition(ctx, Snapshot{State: StateAuthenticated, Token: saved, User: &user}, ReasonRestored)
	return nil
}

// Login signs in with email and password. On success the new token is
// in the TokenStore before Login returns. On failure the error from the
// authenticator is returned unchanged and the session is left as it was.
// A 2xx response without a token or user fails with ErrIncompleteResponse
// as its cause.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.op.Lock()
	defer m.op.Unlock()

	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if res.Token == "" || !res.User.Valid() {
		m.log.Warn("login response incomplete", "has_user", res.User.Valid())
		return incomplete(http.StatusOK)
	}

	user := res.User
	m.tokens.Set(res.Token)
	m.transition(ctx, Snapshot{State: StateAuthenticated, Token: res.Token, User: &user, Loading: true}, ReasonLogin)
	return nil
}

// Logout clears the token, the user and the saved credential. It makes
// no network call. An error means the saved credential could not be
// removed; the in-memory session is signed out regardless.
func (m *Manager) Logout(ctx context.Context) error {
	m.op.Lock()
	defer m.op.Unlock()

	m.tokens.Clear()
	return m.transition(ctx, Snapshot{State: StateUnauthenticated}, ReasonLogout)
}

// Sync reconciles the session with the saved credential after another
// process changed it. A removed credential signs out, a new one is
// restored, and an unchanged one is ignored.
func (m *Manager) Sync(ctx context.Context) error {
	m.op.Lock()
	defer m.op.Unlock()

	current := m.Snapshot()
	saved, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, credential.ErrNotFound):
		if current.Token == "" {
			return nil
		}
		m.tokens.Clear()
		m.transition(ctx, Snapshot{State: StateUnauthenticated}, ReasonExternal)
		return nil
	case err != nil:
		return err
	case token.Equal(saved, current.Token):
		return nil
	default:
		return m.restore(ctx, saved)
	}
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.snap.Loading = loading
	m.mu.Unlock()
}

// transition installs to and runs the hooks. Hook errors are logged and
// joined; they never undo the transition.
func (m *Manager) transition(ctx context.Context, to Snapshot, reason Reason) error {
	m.mu.Lock()
	from := m.snap
	m.snap = to
	m.mu.Unlock()

	m.log.Debug("session transition",
		"from", from.State.String(),
		"to", to.State.String(),
		"reason", string(reason))
	m.metrics.ObserveTransition(string(reason))

	t := Transition{From: from, To: to, Reason: reason}
	var errs []error
	for _, h := range m.hooks {
		if err := h(ctx, t); err != nil {
			m.log.Warn("session hook failed", "reason", string(reason), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
