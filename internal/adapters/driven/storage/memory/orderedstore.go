package memory

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
)

// Ensure OrderedStore implements the interface.
var _ driven.OrderedStore = (*OrderedStore)(nil)

// OrderedStore is an in-memory implementation of driven.OrderedStore.
// It backs dry runs and service tests.
type OrderedStore struct {
	mu          sync.RWMutex
	entries     map[string][]byte
	puts        int
	compactions int
	closed      bool
}

// NewOrderedStore creates a new empty in-memory ordered store.
func NewOrderedStore() *OrderedStore {
	return &OrderedStore{
		entries: make(map[string][]byte),
	}
}

// Put writes value at key, replacing any previous value.
func (s *OrderedStore) Put(_ context.Context, key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreWrite
	}
	s.entries[string(key)] = bytes.Clone(value)
	s.puts++
	return nil
}

// Get returns a copy of the value at key.
func (s *OrderedStore) Get(_ context.Context, key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[string(key)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return bytes.Clone(v), nil
}

// Iterate visits entries in ascending byte order of key.
func (s *OrderedStore) Iterate(ctx context.Context, fn func(key, value []byte) error) error {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	// Go string comparison is byte-wise.
	slices.Sort(keys)

	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.mu.RLock()
		v, ok := s.entries[k]
		s.mu.RUnlock()
		if !ok {
			continue
		}
		if err := fn([]byte(k), bytes.Clone(v)); err != nil {
			return err
		}
	}
	return nil
}

// CompactAll records the request; there is nothing to reorganise in memory.
func (s *OrderedStore) CompactAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compactions++
	return nil
}

// Close marks the store closed. Later writes fail.
func (s *OrderedStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Len returns the number of distinct keys.
func (s *OrderedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Puts returns how many writes were issued, including overwrites.
func (s *OrderedStore) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

// Compactions returns how many times CompactAll was called.
func (s *OrderedStore) Compactions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compactions
}
