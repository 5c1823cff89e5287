package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/core/ports/driving"
)

// Ensure Inspector implements the interface.
var _ driving.StoreInspector = (*Inspector)(nil)

// Inspector reads entries back from a migrated store.
type Inspector struct {
	store driven.OrderedStore
}

// NewInspector creates an inspector over store.
func NewInspector(store driven.OrderedStore) *Inspector {
	return &Inspector{store: store}
}

// Walk visits every entry in byte order of key. Keys are little-endian,
// so byte order is not chronological: the key for 256 sorts before 1.
func (i *Inspector) Walk(ctx context.Context, fn func(entry driving.InspectedEntry) error) error {
	return i.store.Iterate(ctx, func(key, value []byte) error {
		ts, err := DecodeKey(key)
		if err != nil {
			return fmt.Errorf("key %x: %w", key, err)
		}
		return fn(driving.InspectedEntry{Key: key, Timestamp: ts, Content: value})
	})
}

// Lookup returns the content stored at the key for at.
func (i *Inspector) Lookup(ctx context.Context, at time.Time) ([]byte, error) {
	return i.store.Get(ctx, EncodeKey(at))
}
