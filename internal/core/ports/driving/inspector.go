package driving

import (
	"context"
	"time"
)

// StoreInspector reads back a migrated store.
type StoreInspector interface {
	// Walk calls fn for each entry in key (timestamp) order.
	Walk(ctx context.Context, fn func(entry InspectedEntry) error) error

	// Lookup returns the content stored for the given instant.
	Lookup(ctx context.Context, at time.Time) ([]byte, error)
}

// InspectedEntry is a decoded store entry.
type InspectedEntry struct {
	Key       []byte
	Timestamp time.Time
	Content   []byte
}
