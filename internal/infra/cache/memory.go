package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   []byte
	count   int64
	expires time.Time
}

// Memory is the single-process counterpart of Redis.
type Memory struct {
	mu    sync.Mutex
	items map[string]*entry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		items: map[string]*entry{},
		now:   time.Now,
	}
}

func (m *Memory) live(key string) *entry {
	e := m.items[key]
	if e == nil {
		return nil
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.items, key)
		return nil
	}
	return e
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.live(key)
	if e == nil || e.value == nil {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.items[key] = e
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *Memory) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.live(key)
	if e == nil {
		e = &entry{expires: m.now().Add(window)}
		m.items[key] = e
	}
	e.count++
	return e.count, nil
}
