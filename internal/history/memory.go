// internal/history/memory.go
package history

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory implementation of Store for testing.
type MemoryStore struct {
	records map[string]*Record
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// Create stores a copy of r. An empty ID is assigned.
func (m *MemoryStore) Create(ctx context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = NewID()
	}
	if _, exists := m.records[r.ID]; exists {
		return ErrAlreadyExists
	}

	copy := *r
	m.records[r.ID] = &copy
	return nil
}

// Get retrieves a record.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, exists := m.records[id]
	if !exists {
		return nil, &NotFoundError{ID: id}
	}

	copy := *r
	return &copy, nil
}

// List returns matching records, newest first.
func (m *MemoryStore) List(ctx context.Context, opts ListOptions) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	var result []*Record
	for _, id := range ids {
		r := m.records[id]
		if !opts.matches(r) {
			continue
		}
		copy := *r
		result = append(result, &copy)
		if opts.Limit > 0 && len(result) >= opts.Limit {
			break
		}
	}
	return result, nil
}

// Close closes the store.
func (m *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
