package session

import (
	"context"
	"encoding/json"
	"fmt"

	"playoh/internal/config"
	"playoh/internal/domain/users"
	"playoh/internal/kv"
)

// Store holds one device's credential, cached profile and remembered email.
// Nothing is cached in memory: every call reads the key-value store again.
type Store struct {
	kv kv.Store
}

// New returns the session of deviceID inside the shared store.
func New(store kv.Store, deviceID string) *Store {
	return &Store{kv: kv.WithPrefix(store, "device:"+deviceID+":")}
}

// Token returns the stored credential, or "" when there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.kv.Get(ctx, config.StorageKeys.AuthToken)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.kv.Set(ctx, config.StorageKeys.AuthToken, token); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// IsAuthenticated is true when a non-empty token is stored. The token is not
// decoded or checked for expiry; the backend decides whether it is still good.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}

// SaveUserData replaces the cached profile snapshot.
func (s *Store) SaveUserData(ctx context.Context, snap users.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, config.StorageKeys.UserData, string(b)); err != nil {
		return fmt.Errorf("write user data: %w", err)
	}
	return nil
}

// UserData returns the cached snapshot, nil when none is stored. A blob that
// does not decode is returned as the decode error.
func (s *Store) UserData(ctx context.Context) (*users.Snapshot, error) {
	raw, ok, err := s.kv.Get(ctx, config.StorageKeys.UserData)
	if err != nil {
		return nil, fmt.Errorf("read user data: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var snap users.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SetSession stores the credential first and then the profile.
func (s *Store) SetSession(ctx context.Context, token string, snap users.Snapshot) error {
	if err := s.SetToken(ctx, token); err != nil {
		return err
	}
	return s.SaveUserData(ctx, snap)
}

// Clear removes the credential and the cached profile. The remembered email
// survives so the login screen can still prefill it.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, config.StorageKeys.AuthToken, config.StorageKeys.UserData); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) RememberEmail(ctx context.Context, email string) error {
	if err := s.kv.Set(ctx, config.StorageKeys.RememberedEmail, email); err != nil {
		return fmt.Errorf("write remembered email: %w", err)
	}
	return nil
}

// RememberedEmail returns "" when nothing was remembered.
func (s *Store) RememberedEmail(ctx context.Context) (string, error) {
	email, _, err := s.kv.Get(ctx, config.StorageKeys.RememberedEmail)
	if err != nil {
		return "", fmt.Errorf("read remembered email: %w", err)
	}
	return email, nil
}

type ctxKey struct{}

// NewContext attaches s to ctx.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by NewContext, or nil.
func FromContext(ctx context.Context) *Store {
	s, _ := ctx.Value(ctxKey{}).(*Store)
	return s
}
