package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"saglikhep/internal/api"
	"saglikhep/pkg/domain"
)

// Manager owns the in-memory session state and its lifecycle:
// Anonymous -> (login) -> Authenticated -> (refresh) -> Authenticated
// with a rotated pair -> (refresh failure or logout) -> Anonymous.
// Token persistence is delegated to the snapshot store; the HTTP
// client reads and rotates tokens through the same store but never
// touches the in-memory state here.
type Manager struct {
	mu        sync.Mutex
	client    *api.Client
	store     Store
	current   Snapshot
	onExpired func()
}

func NewManager(client *api.Client, store Store) *Manager {
	return &Manager{client: client, store: store}
}

// OnExpired registers the front-end reaction to the session ending,
// whether by refresh failure or explicit logout (the panel's redirect
// to the login screen).
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	m.onExpired = fn
	m.mu.Unlock()
}

// Login authenticates and persists the full session snapshot.
func (m *Manager) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, access, refresh, err := m.client.Login(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	user = domain.NormalizeUser(user)
	snap := Snapshot{
		AccessToken:     access,
		RefreshToken:    refresh,
		User:            &user,
		IsAuthenticated: true,
	}
	if err := m.store.Save(ctx, snap); err != nil {
		return domain.User{}, err
	}
	m.mu.Lock()
	m.current = snap
	m.mu.Unlock()
	slog.Info("session established", "user", user.ID)
	return user, nil
}

// Logout is fail-safe client-side: local session state is cleared and
// the session-ended hook fires no matter how the server call ends, the
// same Anonymous transition a refresh failure takes. The server error,
// if any, is returned for logging only.
func (m *Manager) Logout(ctx context.Context) error {
	serverErr := m.client.Logout(ctx)
	if serverErr != nil {
		slog.Warn("server-side logout failed, clearing local session anyway", "error", serverErr)
	}
	_ = m.store.Clear(ctx)
	m.Expire()
	return serverErr
}

// Restore loads the persisted snapshot back into memory after a
// restart. A session whose access token already expired is still
// restored when a refresh token is present; the HTTP client will
// recover it on the first 401.
func (m *Manager) Restore(ctx context.Context) (Snapshot, bool, error) {
	snap, ok, err := m.store.Load(ctx)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}
	if !snap.IsAuthenticated {
		return Snapshot{}, false, nil
	}
	if expiry, known := accessTokenExpiry(snap.AccessToken); known && time.Now().After(expiry) && snap.RefreshToken == "" {
		slog.Info("stored session expired with no refresh token, discarding")
		_ = m.store.Clear(ctx)
		return Snapshot{}, false, nil
	}
	m.mu.Lock()
	m.current = snap
	m.mu.Unlock()
	slog.Debug("session restored from snapshot")
	return snap, true, nil
}

// Current returns the in-memory session state.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Expire resets the in-memory state and fires the session-ended hook.
// Wired as the HTTP client's session-expired callback and the tail of
// an explicit Logout, so every exit to Anonymous takes the same path.
func (m *Manager) Expire() {
	m.mu.Lock()
	m.current = Snapshot{}
	fn := m.onExpired
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// accessTokenExpiry reads the exp claim without verifying the
// signature; the client is not in the token trust business.
func accessTokenExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
