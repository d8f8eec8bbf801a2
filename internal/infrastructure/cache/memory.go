// Package cache provides the keyed café cache shared by every view, plus a
// gateway decorator that keeps it warm and invalidates it on mutation.
package cache

import (
	"context"
	"sync"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

// Memory is the default in-process cache implementation.
type Memory struct {
	mu    sync.RWMutex
	cafes map[string]domain.Cafe
}

func NewMemory() *Memory {
	return &Memory{cafes: make(map[string]domain.Cafe)}
}

var _ ports.CafeCache = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, id string) (*domain.Cafe, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cafe, ok := m.cafes[id]
	if !ok {
		return nil, false
	}
	return &cafe, true
}

func (m *Memory) Put(_ context.Context, cafe domain.Cafe) {
	if cafe.ID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cafes[cafe.ID] = cafe
}

func (m *Memory) PutAll(ctx context.Context, cafes []domain.Cafe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cafes {
		if c.ID != "" {
			m.cafes[c.ID] = c
		}
	}
}

func (m *Memory) Invalidate(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cafes, id)
}

func (m *Memory) InvalidateAll(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cafes = make(map[string]domain.Cafe)
}
