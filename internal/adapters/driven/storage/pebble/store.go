package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
)

// bloomBitsPerKey matches the usual point-lookup tuning.
const bloomBitsPerKey = 10

// Ensure Store implements the interface.
var _ driven.OrderedStore = (*Store)(nil)

// Store is a Pebble-backed implementation of driven.OrderedStore.
type Store struct {
	db   *pebble.DB
	path string
}

// Open opens the store at cfg.Path, creating it and any missing parent
// directories.
func Open(cfg domain.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: empty store path", domain.ErrStoreOpen)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("%w: creating parent directory: %w", domain.ErrStoreOpen, err)
	}

	cacheMB := cfg.BlockCacheMB
	if cacheMB <= 0 {
		cacheMB = domain.DefaultBlockCacheMB
	}
	cache := pebble.NewCache(int64(cacheMB) << 20)
	// The DB holds its own reference once opened.
	defer cache.Unref()

	db, err := pebble.Open(cfg.Path, options(cfg, cache))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStoreOpen, cfg.Path, err)
	}

	return &Store{db: db, path: cfg.Path}, nil
}

// options builds Pebble options for a write-heavy bulk load that is
// read back by point lookups.
func options(cfg domain.StoreConfig, cache *pebble.Cache) *pebble.Options {
	bytesPerSync := cfg.BytesPerSync
	if bytesPerSync <= 0 {
		bytesPerSync = domain.DefaultBytesPerSync
	}
	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = domain.DefaultParallelism
	}

	opts := &pebble.Options{
		Cache:                    cache,
		BytesPerSync:             bytesPerSync,
		WALBytesPerSync:          bytesPerSync,
		MaxConcurrentCompactions: func() int { return parallelism },
		Logger:                   pebbleLogger{},
		Levels:                   make([]pebble.LevelOptions, 7),
	}
	for i := range opts.Levels {
		l := &opts.Levels[i]
		l.Compression = pebble.SnappyCompression
		l.FilterPolicy = bloom.FilterPolicy(bloomBitsPerKey)
		l.FilterType = pebble.TableFilter
	}
	return opts
}

// Path returns the store directory.
func (s *Store) Path() string {
	return s.path
}

// Put writes value at key without waiting for a sync.
func (s *Store) Put(_ context.Context, key, value []byte) error {
	if err := s.db.Set(key, value, pebble.NoSync); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

// Get returns a copy of the value at key.
func (s *Store) Get(_ context.Context, key []byte) ([]byte, error) {
	v, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return bytes.Clone(v), nil
}

// Iterate visits entries in ascending byte order of key.
func (s *Store) Iterate(ctx context.Context, fn func(key, value []byte) error) error {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(bytes.Clone(iter.Key()), bytes.Clone(iter.Value())); err != nil {
			return err
		}
	}
	return iter.Error()
}

// CompactAll flushes the memtable and compacts every key the store
// holds. An empty store is left as is.
func (s *Store) CompactAll(_ context.Context) error {
	if err := s.db.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", domain.ErrStoreCompact, err)
	}

	first, last, ok, err := s.bounds()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreCompact, err)
	}
	if !ok {
		return nil
	}

	// Compact's end bound is exclusive; the smallest key after last is last+0x00.
	end := append(bytes.Clone(last), 0x00)
	if err := s.db.Compact(first, end, true); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreCompact, err)
	}
	return nil
}

// bounds returns the smallest and largest keys in the store.
func (s *Store) bounds() (first, last []byte, ok bool, err error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, nil, false, err
	}
	defer iter.Close()

	if !iter.First() {
		return nil, nil, false, iter.Error()
	}
	first = bytes.Clone(iter.Key())
	if !iter.Last() {
		return nil, nil, false, iter.Error()
	}
	last = bytes.Clone(iter.Key())
	return first, last, true, nil
}

// Close flushes pending writes to disk and releases the lock.
func (s *Store) Close() error {
	if err := s.db.Flush(); err != nil {
		_ = s.db.Close()
		return err
	}
	return s.db.Close()
}
