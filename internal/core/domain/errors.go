package domain

import "errors"

// Domain errors represent migration failure categories.
// Adapters wrap their underlying cause with one of these so the
// CLI can report which stage of the run failed.
var (
	// ErrNotFound indicates a requested key does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates the run configuration is incomplete or
	// a credential file could not be read.
	ErrConfiguration = errors.New("configuration error")

	// Source Errors.

	// ErrSourceConnect indicates the relational source could not be reached.
	ErrSourceConnect = errors.New("source connection failed")

	// ErrSourceQuery indicates a query against the source failed.
	// Extraction aborts; no partial result is loaded.
	ErrSourceQuery = errors.New("source query failed")

	// ErrRowCoercion indicates a column value could not be converted
	// to its semantic type.
	ErrRowCoercion = errors.New("row coercion failed")

	// Store Errors.

	// ErrStoreOpen indicates the destination store could not be opened.
	ErrStoreOpen = errors.New("store open failed")

	// ErrStoreWrite indicates a write to the destination store failed.
	// The store may be left partially written.
	ErrStoreWrite = errors.New("store write failed")

	// ErrStoreCompact indicates the post-load compaction failed.
	ErrStoreCompact = errors.New("store compaction failed")

	// ErrInvalidKey indicates a store key is not a valid timestamp key.
	ErrInvalidKey = errors.New("invalid store key")
)
