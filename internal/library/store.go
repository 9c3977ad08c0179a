package library

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/jobfit/internal/types"
)

// Store is the persistence collaborator behind a Library. Implementations
// return ErrNotFound and ErrDuplicateID for missing and clashing ids.
type Store interface {
	Create(ctx context.Context, item types.LibraryItem) error
	Get(ctx context.Context, id string) (types.LibraryItem, error)
	Update(ctx context.Context, item types.LibraryItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]types.LibraryItem, error)
	// RecordUsage increments usage_count and sets last_used for each id
	RecordUsage(ctx context.Context, ids []string, at time.Time) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// MemoryStore is the in-memory reference Store
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]types.LibraryItem
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]types.LibraryItem)}
}

// Create inserts a new item
func (s *MemoryStore) Create(_ context.Context, item types.LibraryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; exists {
		return ErrDuplicateID
	}
	s.items[item.ID] = copyItem(item)
	return nil
}

// Get returns a copy of an item
func (s *MemoryStore) Get(_ context.Context, id string) (types.LibraryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return types.LibraryItem{}, ErrNotFound
	}
	return copyItem(item), nil
}

// Update replaces an existing item
func (s *MemoryStore) Update(_ context.Context, item types.LibraryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return ErrNotFound
	}
	s.items[item.ID] = copyItem(item)
	return nil
}

// Delete removes an item
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// List returns copies of all items ordered by id
func (s *MemoryStore) List(_ context.Context) ([]types.LibraryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.LibraryItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, copyItem(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RecordUsage bumps usage counters. Unknown ids are ignored.
func (s *MemoryStore) RecordUsage(_ context.Context, ids []string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		item, ok := s.items[id]
		if !ok {
			continue
		}
		item.UsageCount++
		used := at
		item.LastUsed = &used
		s.items[id] = item
	}
	return nil
}

func copyItem(item types.LibraryItem) types.LibraryItem {
	c := item
	c.Statement = item.Statement.Clone()
	if item.LastUsed != nil {
		t := *item.LastUsed
		c.LastUsed = &t
	}
	return c
}
