package driven

import (
	"context"
)

// OrderedStore is an embedded key/value store that keeps keys in
// byte-wise order. Put overwrites any existing value at the key.
type OrderedStore interface {
	// Put writes value at key, replacing any previous value.
	Put(ctx context.Context, key, value []byte) error

	// Get returns the value at key or domain.ErrNotFound.
	// The returned slice is owned by the caller.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Iterate calls fn for every entry in ascending key order.
	// Iteration stops at the first error returned by fn.
	Iterate(ctx context.Context, fn func(key, value []byte) error) error

	// CompactAll compacts the whole keyspace. It never changes the
	// set of retrievable entries.
	CompactAll(ctx context.Context) error

	// Close flushes pending writes and releases the store.
	Close() error
}

// StoreOpener opens the destination store. The migrator calls it only
// after extraction succeeds, so a failed extraction leaves the
// destination untouched.
type StoreOpener func(ctx context.Context) (OrderedStore, error)
