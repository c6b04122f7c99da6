package session

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/spot-go/internal/cli/apitest"
	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/cli/credential"
	"github.com/yndnr/spot-go/internal/core/domain"
	"github.com/yndnr/spot-go/internal/core/service"
	"github.com/yndnr/spot-go/internal/telemetry/logger"
	"github.com/yndnr/spot-go/internal/telemetry/metric"
)

var staff = domain.User{ID: "1", Name: "A", Email: "a@b.com"}

type harness struct {
	api    *apitest.Server
	tokens *connection.TokenStore
	store  credential.Store
	svc    *service.Services
	mgr    *Manager
}

func newHarness(t *testing.T, store credential.Store, opts ...Option) *harness {
	t.Helper()
	api := apitest.New(t)
	api.AddAccount("a@b.com", "x", "tok1", staff)

	tokens := connection.NewTokenStore()
	client, err := connection.NewHTTPClient(connection.Config{BaseURL: api.URL}, tokens,
		connection.WithLogger(logger.Nop()))
	require.NoError(t, err)

	if store == nil {
		store = credential.NewMemoryStore()
	}
	svc := service.New(client)
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)

	return &harness{
		api:    api,
		tokens: tokens,
		store:  store,
		svc:    svc,
		mgr:    NewManager(tokens, svc.Auth, store, opts...),
	}
}

func (h *harness) saved(t *testing.T) (string, bool) {
	t.Helper()
	tok, err := h.store.Load(context.Background())
	if errors.Is(err, credential.ErrNotFound) {
		return "", false
	}
	require.NoError(t, err)
	return tok, true
}

func TestManager_InitialSnapshot(t *testing.T) {
	h := newHarness(t, nil)
	snap := h.mgr.Snapshot()

	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.True(t, snap.Loading, "loading until bootstrap settles")
	assert.False(t, snap.IsAuthenticated())
}

func TestSnapshot_IsAuthenticated(t *testing.T) {
	u := staff
	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"empty", Snapshot{}, false},
		{"token only", Snapshot{State: StateRestoring, Token: "tok1"}, false},
		{"user only", Snapshot{User: &u}, false},
		{"both", Snapshot{State: StateAuthenticated, Token: "tok1", User: &u}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.IsAuthenticated())
		})
	}
}

func TestManager_Bootstrap_NoCredential(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.mgr.Bootstrap(context.Background()))

	snap := h.mgr.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.False(t, snap.Loading)
	assert.Empty(t, h.api.Requests(), "no network call without a saved token")
}

func TestManager_Bootstrap_Restores(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	require.NoError(t, h.store.Save(ctx, "tok1"))

	var seen []State
	h.mgr.OnTransition(func(_ context.Context, tr Transition) error {
		seen = append(seen, tr.To.State)
		if tr.To.State == StateRestoring {
			assert.False(t, tr.To.IsAuthenticated(), "restoring is not authenticated")
		}
		return nil
	})

	require.NoError(t, h.mgr.Bootstrap(ctx))

	snap := h.mgr.Snapshot()
	assert.Equal(t, []State{StateRestoring, StateAuthenticated}, seen)
	assert.True(t, snap.IsAuthenticated())
	assert.False(t, snap.Loading)
	assert.Equal(t, staff, *snap.User)
	assert.Equal(t, "tok1", h.tokens.Token())

	req := h.api.Last()
	assert.Equal(t, "/auth/profile", req.Path)
	assert.True(t, req.HasBearer("tok1"))
}

func TestManager_Bootstrap_ProfileFails(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
	}{
		{"rejected token", func(h *harness) {}},
		{"server error", func(h *harness) {
			h.api.Respond(http.MethodGet, "/auth/profile", http.StatusInternalServerError, "oops")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			ctx := context.Background()
			require.NoError(t, h.store.Save(ctx, "stale"))
			tt.setup(h)

			require.NoError(t, h.mgr.Bootstrap(ctx), "restore failure is not surfaced")

			snap := h.mgr.Snapshot()
			assert.Equal(t, StateUnauthenticated, snap.State)
			assert.False(t, snap.Loading)
			assert.Nil(t, snap.User)
			assert.Empty(t, h.tokens.Token())
			_, ok := h.saved(t)
			assert.False(t, ok, "persisted credential removed")
		})
	}
}

func TestManager_Bootstrap_EmptyProfile(t *testing.T) {
	for _, body := range []string{`{"data":null}`, `{"data":{}}`, `{}`} {
		t.Run(body, func(t *testing.T) {
			h := newHarness(t, nil)
			ctx := context.Background()
			require.NoError(t, h.store.Save(ctx, "tok1"))
			h.api.Respond(http.MethodGet, "/auth/profile", http.StatusOK, body)

			var last Transition
			h.mgr.OnTransition(func(_ context.Context, tr Transition) error { last = tr; return nil })

			require.NoError(t, h.mgr.Bootstrap(ctx))

			snap := h.mgr.Snapshot()
			assert.Equal(t, StateUnauthenticated, snap.State)
			assert.False(t, snap.IsAuthenticated())
			assert.Nil(t, snap.User)
			assert.Empty(t, h.tokens.Token())
			assert.Equal(t, ReasonRestoreFailed, last.Reason)
			_, ok := h.saved(t)
			assert.False(t, ok, "persisted credential removed")
		})
	}
}

func TestManager_Bootstrap_Unreachable(t *testing.T) {
	tokens := connection.NewTokenStore()
	client, err := connection.NewHTTPClient(connection.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		tokens, connection.WithLogger(logger.Nop()))
	require.NoError(t, err)

	store := credential.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "tok1"))
	mgr := NewManager(tokens, service.NewAuthService(client), store, WithLogger(logger.Nop()))

	require.NoError(t, mgr.Bootstrap(context.Background()))
	assert.Equal(t, StateUnauthenticated, mgr.Snapshot().State)
	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, credential.ErrNotFound)
}

func TestManager_Bootstrap_Cancelled(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.store.Save(context.Background(), "tok1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.mgr.Bootstrap(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateUnauthenticated, h.mgr.Snapshot().State)
	tok, ok := h.saved(t)
	assert.True(t, ok, "cancellation keeps the saved credential")
	assert.Equal(t, "tok1", tok)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestManager_Bootstrap_ExpiredJWT(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := newHarness(t, nil, WithExpiryCheck(true), WithClock(func() time.Time { return now }))
	require.NoError(t, h.store.Save(context.Background(), signedToken(t, now.Add(-time.Minute))))

	require.NoError(t, h.mgr.Bootstrap(context.Background()))

	assert.Equal(t, StateUnauthenticated, h.mgr.Snapshot().State)
	assert.Empty(t, h.api.Requests(), "expired token skips the profile fetch")
	_, ok := h.saved(t)
	assert.False(t, ok)
}

func TestManager_Bootstrap_ExpiryCheckOff(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := newHarness(t, nil, WithClock(func() time.Time { return now }))
	require.NoError(t, h.store.Save(context.Background(), signedToken(t, now.Add(-time.Minute))))

	require.NoError(t, h.mgr.Bootstrap(context.Background()))
	require.Len(t, h.api.Requests(), 1, "without the check the server decides")
}

func TestManager_Bootstrap_UnreadableCredential(t *testing.T) {
	inner := credential.NewMemoryStore()
	require.NoError(t, inner.Save(context.Background(), "plain-not-sealed"))
	sealed, err := credential.Seal(inner, "secret")
	require.NoError(t, err)
	h := newHarness(t, sealed)

	err = h.mgr.Bootstrap(context.Background())
	assert.ErrorIs(t, err, credential.ErrSealedOpen)
	assert.Equal(t, StateUnauthenticated, h.mgr.Snapshot().State)
	assert.False(t, h.mgr.Snapshot().Loading)
	assert.Empty(t, h.api.Requests())
}

// Scenario: login, then a reservation fetch carries the new token.
func TestManager_Login_ThenServiceCall(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	require.NoError(t, h.mgr.Bootstrap(ctx))

	require.NoError(t, h.mgr.Login(ctx, "a@b.com", "x"))

	snap := h.mgr.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.True(t, snap.IsAuthenticated())
	assert.False(t, snap.Loading)
	assert.Equal(t, "tok1", snap.Token)
	assert.Equal(t, staff, *snap.User)

	tok, ok := h.saved(t)
	assert.True(t, ok)
	assert.Equal(t, "tok1", tok)

	_, err := h.svc.Reservations.List(ctx)
	require.NoError(t, err)
	assert.True(t, h.api.Last().HasBearer("tok1"))
}

func TestManager_Login_Failure(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	require.NoError(t, h.mgr.Bootstrap(ctx))

	var transitions int
	h.mgr.OnTransition(func(context.Context, Transition) error { transitions++; return nil })

	err := h.mgr.Login(ctx, "a@b.com", "wrong")
	require.Error(t, err)

	var apiErr *connection.APIError
	require.ErrorAs(t, err, &apiErr, "error is passed through unchanged")
	assert.Equal(t, "Invalid email or password", apiErr.Message)

	snap := h.mgr.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.False(t, snap.Loading, "loading reset on failure")
	assert.Empty(t, h.tokens.Token())
	assert.Zero(t, transitions)
	_, ok := h.saved(t)
	assert.False(t, ok)
}

func TestManager_Login_IncompleteResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty data", `{"data":{}}`},
		{"null data", `{"data":null}`},
		{"token without user", `{"data":{"token":"tok9"}}`},
		{"user without token", `{"data":{"user":{"id":"1","name":"A","email":"a@b.com"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			ctx := context.Background()
			require.NoError(t, h.mgr.Bootstrap(ctx))
			h.api.Respond(http.MethodPost, "/auth/login", http.StatusOK, tt.body)

			var transitions int
			h.mgr.OnTransition(func(context.Context, Transition) error { transitions++; return nil })

			err := h.mgr.Login(ctx, "a@b.com", "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIncompleteResponse)
			assert.Equal(t, connection.MsgRequestFailed, connection.Message(err))

			snap := h.mgr.Snapshot()
			assert.Equal(t, StateUnauthenticated, snap.State)
			assert.False(t, snap.IsAuthenticated())
			assert.Empty(t, h.tokens.Token())
			assert.Zero(t, transitions)
			_, ok := h.saved(t)
			assert.False(t, ok, "nothing persisted")
		})
	}
}

func TestManager_Login_LoadingDuringCall(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.mgr.Bootstrap(context.Background()))

	// A fake authenticator observes the snapshot mid-call.
	probe := &probeAuth{mgr: h.mgr}
	h.mgr.auth = probe
	require.NoError(t, h.mgr.Login(context.Background(), "a@b.com", "x"))

	assert.True(t, probe.loading)
	assert.False(t, h.mgr.Snapshot().Loading)
}

type probeAuth struct {
	mgr     *Manager
	loading bool
}

func (p *probeAuth) Login(context.Context, string, string) (domain.LoginResult, error) {
	p.loading = p.mgr.Snapshot().Loading
	return domain.LoginResult{Token: "tok9", User: staff}, nil
}

func (p *probeAuth) Profile(context.Context) (domain.User, error) { return staff, nil }

func TestManager_Login_PersistFailureKeepsSession(t *testing.T) {
	store := credential.NewMemoryStore()
	h := newHarness(t, store)
	require.NoError(t, h.mgr.Bootstrap(context.Background()))
	require.NoError(t, store.Close())

	require.NoError(t, h.mgr.Login(context.Background(), "a@b.com", "x"))
	assert.True(t, h.mgr.Snapshot().IsAuthenticated())
}

func TestManager_Logout(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	require.NoError(t, h.mgr.Login(ctx, "a@b.com", "x"))
	h.api.Reset()

	require.NoError(t, h.mgr.Logout(ctx))

	snap := h.mgr.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Token)
	assert.Empty(t, h.tokens.Token())
	_, ok := h.saved(t)
	assert.False(t, ok)
	assert.Empty(t, h.api.Requests(), "logout makes no network call")

	_, err := h.mgr.User()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestManager_LogoutThenBootstrap(t *testing.T) {
	h := newHarness(t, credential.NewFileStore(filepath.Join(t.TempDir(), "credential")))
	ctx := context.Background()
	require.NoError(t, h.mgr.Login(ctx, "a@b.com", "x"))
	require.NoError(t, h.mgr.Logout(ctx))
	h.api.Reset()

	require.NoError(t, h.mgr.Bootstrap(ctx))

	assert.Equal(t, StateUnauthenticated, h.mgr.Snapshot().State)
	assert.Empty(t, h.api.Requests())
}

func TestManager_Logout_StoreError(t *testing.T) {
	store := credential.NewMemoryStore()
	h := newHarness(t, store)
	require.NoError(t, h.mgr.Login(context.Background(), "a@b.com", "x"))
	require.NoError(t, store.Close())

	err := h.mgr.Logout(context.Background())
	assert.ErrorIs(t, err, credential.ErrClosed)
	assert.False(t, h.mgr.Snapshot().IsAuthenticated(), "signed out in memory regardless")
}

func TestManager_HookOrder(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	var savedWhenHookRan bool
	h.mgr.OnTransition(func(ctx context.Context, tr Transition) error {
		if tr.Reason == ReasonLogin {
			_, err := h.store.Load(ctx)
			savedWhenHookRan = err == nil
		}
		return nil
	})

	require.NoError(t, h.mgr.Login(ctx, "a@b.com", "x"))
	assert.True(t, savedWhenHookRan, "persistence runs before later hooks")
}

func TestManager_Sync(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	require.NoError(t, h.mgr.Login(ctx, "a@b.com", "x"))
	h.api.Reset()

	t.Run("unchanged", func(t *testing.T) {
		require.NoError(t, h.mgr.Sync(ctx))
		assert.True(t, h.mgr.Snapshot().IsAuthenticated())
		assert.Empty(t, h.api.Requests())
	})

	t.Run("removed elsewhere", func(t *testing.T) {
		require.NoError(t, h.store.Delete(ctx))
		require.NoError(t, h.mgr.Sync(ctx))
		assert.Equal(t, StateUnauthenticated, h.mgr.Snapshot().State)
		assert.Empty(t, h.tokens.Token())
	})

	t.Run("saved elsewhere", func(t *testing.T) {
		require.NoError(t, h.store.Save(ctx, "tok1"))
		require.NoError(t, h.mgr.Sync(ctx))
		assert.True(t, h.mgr.Snapshot().IsAuthenticated())
		assert.True(t, h.api.Last().HasBearer("tok1"))
	})
}

func TestManager_Metrics(t *testing.T) {
	m := metric.NewClientMetrics()
	h := newHarness(t, nil, WithMetrics(m))
	ctx := context.Background()

	require.NoError(t, h.mgr.Bootstrap(ctx))
	require.NoError(t, h.mgr.Login(ctx, "a@b.com", "x"))
	require.NoError(t, h.mgr.Logout(ctx))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var count float64
	for _, f := range families {
		if f.GetName() == "spot_session_transitions_total" {
			for _, mm := range f.GetMetric() {
				count += mm.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 3.0, count)
}

func TestPersistHook(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()
	hook := PersistHook(store)

	require.NoError(t, hook(ctx, Transition{Reason: ReasonLogin, To: Snapshot{Token: "tok1"}}))
	tok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok1", tok)

	for _, reason := range []Reason{ReasonRestoring, ReasonRestored, ReasonRestoreAborted, ReasonExternal, ReasonNoCredential} {
		require.NoError(t, hook(ctx, Transition{Reason: reason}))
		_, err := store.Load(ctx)
		assert.NoError(t, err, "%s leaves the store alone", reason)
	}

	for _, reason := range []Reason{ReasonLogout, ReasonRestoreFailed, ReasonExpired} {
		require.NoError(t, store.Save(ctx, "tok1"))
		require.NoError(t, hook(ctx, Transition{Reason: reason}))
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, credential.ErrNotFound, "%s deletes", reason)
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "restoring", StateRestoring.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unknown", State(42).String())
}
