package kv

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("kv: store is closed")

// QueryTimeoutDuration bounds a single round trip to a remote store.
var QueryTimeoutDuration = time.Second * 5

// Store is an opaque string key-value store. Missing keys are reported with
// ok=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type prefixed struct {
	prefix string
	store  Store
}

// WithPrefix namespaces every key of store under prefix. Closing the returned
// store is a no-op; the parent owns the connection.
func WithPrefix(store Store, prefix string) Store {
	return &prefixed{prefix: prefix, store: store}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.store.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = p.prefix + k
	}
	return p.store.Delete(ctx, full...)
}

func (p *prefixed) Close() error { return nil }
