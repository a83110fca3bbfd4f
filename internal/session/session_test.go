package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"playoh/internal/config"
	"playoh/internal/domain/users"
	"playoh/internal/kv"
)

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New(kv.NewMemory(), "dev-1")
	if s.IsAuthenticated(ctx) {
		t.Fatal("fresh session reports authenticated")
	}
	if snap, err := s.UserData(ctx); snap != nil || err != nil {
		t.Fatalf("UserData on empty = %v, %v; want nil, nil", snap, err)
	}

	snap := users.Snapshot{UserID: 7, Name: "Ada", Email: "ada@example.com", IsAdmin: true}
	if err := s.SetSession(ctx, "tok", snap); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if !s.IsAuthenticated(ctx) {
		t.Fatal("session with token reports unauthenticated")
	}
	got, err := s.UserData(ctx)
	if err != nil || got == nil || got.Name != "Ada" || !got.IsAdmin {
		t.Fatalf("UserData = %+v, %v", got, err)
	}

	if err := s.RememberEmail(ctx, "ada@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.IsAuthenticated(ctx) {
		t.Fatal("cleared session reports authenticated")
	}
	if snap, _ := s.UserData(ctx); snap != nil {
		t.Fatalf("profile survived Clear: %+v", snap)
	}
	if email, _ := s.RememberedEmail(ctx); email != "ada@example.com" {
		t.Fatalf("remembered email = %q, want it to survive Clear", email)
	}
}

func TestEmptyTokenIsNotAuthenticated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := New(kv.NewMemory(), "dev")
	if err := s.SetToken(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated(ctx) {
		t.Fatal("empty token counted as authenticated")
	}
}

func TestMalformedUserDataPropagates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := kv.NewMemory()
	if err := store.Set(ctx, "device:dev:"+config.StorageKeys.UserData, "{not json"); err != nil {
		t.Fatal(err)
	}

	_, err := New(store, "dev").UserData(ctx)
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("UserData error = %v, want *json.SyntaxError", err)
	}
}

func TestDevicesAreIsolated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := kv.NewMemory()
	a, b := New(store, "a"), New(store, "b")
	if err := a.SetToken(ctx, "tok-a"); err != nil {
		t.Fatal(err)
	}
	if b.IsAuthenticated(ctx) {
		t.Fatal("device b sees device a's token")
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	s := New(kv.NewMemory(), "x")
	if FromContext(context.Background()) != nil {
		t.Fatal("empty context returned a session")
	}
	if FromContext(NewContext(context.Background(), s)) != s {
		t.Fatal("session lost in context")
	}
}
