package session

import (
	"context"

	"saglikhep/pkg/domain"
)

// Snapshot is the persisted session state: the token pair, the user
// profile and the authenticated flag. Transient flags (loading, error)
// are deliberately not part of it.
type Snapshot struct {
	AccessToken     string       `json:"accessToken"`
	RefreshToken    string       `json:"refreshToken"`
	User            *domain.User `json:"user,omitempty"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Store persists the session snapshot across process restarts.
type Store interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
}

// TokenStore exposes a snapshot store to the HTTP client as persisted
// token storage. Token writes after a refresh keep the stored user so
// the rest of the snapshot survives rotation.
type TokenStore struct {
	store Store
}

func NewTokenStore(store Store) *TokenStore {
	return &TokenStore{store: store}
}

func (t *TokenStore) Tokens(ctx context.Context) (string, string, error) {
	snap, ok, err := t.store.Load(ctx)
	if err != nil || !ok {
		return "", "", err
	}
	return snap.AccessToken, snap.RefreshToken, nil
}

func (t *TokenStore) SetTokens(ctx context.Context, access, refresh string) error {
	snap, _, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	snap.AccessToken = access
	snap.RefreshToken = refresh
	snap.IsAuthenticated = access != ""
	return t.store.Save(ctx, snap)
}

func (t *TokenStore) Clear(ctx context.Context) error {
	return t.store.Clear(ctx)
}
