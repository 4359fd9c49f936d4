package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	expiresAt time.Time
	value     V
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-process cache with TTL expiration.
type Memory[V any] struct {
	items  map[string]entry[V]
	opts   *options
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[*User](cache.WithDefaultTTL(5 * time.Minute))
//	defer c.Close()
func NewMemory[V any](opts ...Option) *Memory[V] {
	m := &Memory[V]{
		items: make(map[string]entry[V]),
		opts:  newOptions(opts),
		done:  make(chan struct{}),
	}
	if m.opts.cleanupInterval > 0 {
		go m.janitor(m.opts.cleanupInterval)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return zero, ErrClosed
	}
	e, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	if e.expired(time.Now()) {
		delete(m.items, key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, exists := m.items[key]; !exists && m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		m.evictLocked()
	}
	m.items[key] = entry[V]{value: value, expiresAt: m.opts.expiry(ttl)}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. Further operations return ErrClosed.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	m.items = nil
	return nil
}

// evictLocked drops expired entries, then the entry expiring soonest if
// the cache is still full. Entries without expiry go last.
func (m *Memory[V]) evictLocked() {
	now := time.Now()
	for k, e := range m.items {
		if e.expired(now) {
			delete(m.items, k)
		}
	}
	if len(m.items) < m.opts.maxEntries {
		return
	}

	var victim string
	var soonest time.Time
	found := false
	for k, e := range m.items {
		at := e.expiresAt
		if at.IsZero() {
			at = never
		}
		if !found || at.Before(soonest) {
			victim, soonest, found = k, at, true
		}
	}
	if found {
		delete(m.items, victim)
	}
}

var never = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

func (m *Memory[V]) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-t.C:
			m.mu.Lock()
			for k, e := range m.items {
				if e.expired(now) {
					delete(m.items, k)
				}
			}
			m.mu.Unlock()
		}
	}
}

var _ Cache[any] = (*Memory[any])(nil)
