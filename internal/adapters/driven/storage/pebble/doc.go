// Package pebble provides the destination ordered store, backed by
// github.com/cockroachdb/pebble, a pure Go LSM key/value store in the
// RocksDB family.
//
// The store is tuned for a one-shot bulk load followed by point lookups:
//
//   - Bloom filters on every level and a large block cache
//   - Snappy compression on every level
//   - Writes are not synced individually; the WAL and sstables are
//     synced in the background every BytesPerSync bytes
//   - A full-range compaction after the load normalises the layout
//
// # Exclusivity
//
// Pebble takes a file lock on the store directory. A second process
// opening the same path fails with ErrStoreOpen.
package pebble
