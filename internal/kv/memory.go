package kv

import (
	"context"
	"sync"
)

// Memory keeps entries in process memory. Entries are lost on restart.
type Memory struct {
	sync.RWMutex
	entries map[string]string
	closed  bool
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.RLock()
	defer m.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.entries[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return ErrClosed
	}
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *Memory) Close() error {
	m.Lock()
	m.closed = true
	m.entries = nil
	m.Unlock()
	return nil
}

// Len reports the number of stored entries.
func (m *Memory) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.entries)
}
