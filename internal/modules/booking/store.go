// README: Booking store interface plus the in-memory implementation used by
// tests and local development.
package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"cabdesk/internal/types"
)

type Store interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	List(ctx context.Context, status Status, limit int) ([]*Booking, error)
	// UpdateStatus applies an optimistic-concurrency transition; false means
	// another writer moved the booking first.
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, reason string) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
}

type MemStore struct {
	mu       sync.Mutex
	bookings map[types.ID]*Booking
	events   []*Event
	nextEvID int64
}

func NewMemStore() *MemStore {
	return &MemStore{bookings: make(map[types.ID]*Booking)}
}

func (m *MemStore) Create(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *MemStore) Get(_ context.Context, id types.ID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MemStore) List(_ context.Context, status Status, limit int) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if status != "" && b.Status != status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int, reason string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return false, ErrNotFound
	}
	if b.Status != from || b.StatusVersion != version {
		return false, nil
	}
	now := time.Now()
	b.Status = to
	b.StatusVersion++
	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
		if reason != "" {
			b.CancelReason = &reason
		}
	}
	return true, nil
}

func (m *MemStore) AppendEvent(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextEvID++
	cp := *e
	cp.ID = m.nextEvID
	m.events = append(m.events, &cp)
	return nil
}

// Events returns a copy of the appended events, oldest first.
func (m *MemStore) Events() []*Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Event, len(m.events))
	copy(out, m.events)
	return out
}
