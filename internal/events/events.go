// Package events is the in-process bus screens use to tell each other that
// shared server state changed.
package events

import (
	"sync"
	"time"
)

type Name string

const (
	ScheduleDeleted     Name = "scheduleDeleted"
	AllSchedulesDeleted Name = "allSchedulesDeleted"
)

type Event struct {
	Name Name      `json:"name"`
	At   time.Time `json:"at"`
	// ScheduleID is set for ScheduleDeleted.
	ScheduleID int64 `json:"scheduleId,omitempty"`
}

const bufferSize = 16

// Bus fans events out to every subscriber. Publish never blocks: a
// subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

type Subscription struct {
	bus   *Bus
	ch    chan Event
	names map[Name]bool
	once  sync.Once
}

// C delivers events until the subscription is closed.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Close detaches the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		close(s.ch)
	})
}

// Subscribe listens for the given names, or for everything when none are given.
func (b *Bus) Subscribe(names ...Name) *Subscription {
	s := &Subscription{bus: b, ch: make(chan Event, bufferSize)}
	if len(names) > 0 {
		s.names = make(map[Name]bool, len(names))
		for _, n := range names {
			s.names[n] = true
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		s.once.Do(func() { close(s.ch) })
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Publish delivers e and returns how many subscribers received it.
func (b *Bus) Publish(e Event) int {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for s := range b.subs {
		if s.names != nil && !s.names[e.Name] {
			continue
		}
		select {
		case s.ch <- e:
			delivered++
		default:
		}
	}
	return delivered
}

// Close ends every subscription. Later subscriptions start closed.
func (b *Bus) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[*Subscription]struct{})
	b.closed = true
	b.mu.Unlock()

	for s := range subs {
		s.once.Do(func() { close(s.ch) })
	}
}

// Subscribers reports the number of open subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
