package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory expression store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]Saved // id -> saved expression
	seq    int              // insertion order, for List and LoadByName
	order  map[string]int   // id -> insertion sequence
	closed bool
}

// NewMemoryStore creates a new in-memory expression store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]Saved),
		order: make(map[string]int),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(name, source string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", ErrStoreClosed
	}

	id := uuid.NewString()
	m.seq++
	m.data[id] = Saved{
		ID:        id,
		Name:      name,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	m.order[id] = m.seq
	return id, nil
}

// Load implements Store.
func (m *MemoryStore) Load(id string) (Saved, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Saved{}, ErrStoreClosed
	}

	saved, ok := m.data[id]
	if !ok {
		return Saved{}, ErrNotFound
	}
	return saved, nil
}

// LoadByName implements Store.
func (m *MemoryStore) LoadByName(name string) (Saved, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Saved{}, ErrStoreClosed
	}

	best, bestSeq := Saved{}, 0
	for id, saved := range m.data {
		if saved.Name == name && m.order[id] > bestSeq {
			best, bestSeq = saved, m.order[id]
		}
	}
	if bestSeq == 0 {
		return Saved{}, ErrNotFound
	}
	return best, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Saved, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make([]Saved, 0, len(m.data))
	for _, saved := range m.data {
		out = append(out, saved)
	}
	sort.Slice(out, func(i, j int) bool {
		return m.order[out[i].ID] < m.order[out[j].ID]
	})
	return out, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, id)
	delete(m.order, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	m.order = nil
	return nil
}

// Len returns the number of stored expressions.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
