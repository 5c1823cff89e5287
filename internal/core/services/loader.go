package services

import (
	"context"
	"fmt"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/logger"
)

// LoadResult counts what a load wrote.
type LoadResult struct {
	// Written is the number of Put calls that succeeded.
	Written int

	// SentinelKeyed is the number of records keyed at epoch zero
	// because their date failed to parse.
	SentinelKeyed int

	// Overwritten is the number of writes that replaced a key
	// written earlier in the same load.
	Overwritten int
}

// Loader writes Records into the ordered store.
type Loader struct {
	store driven.OrderedStore
}

// NewLoader creates a loader writing to store.
func NewLoader(store driven.OrderedStore) *Loader {
	return &Loader{store: store}
}

// Load writes each record's content under its timestamp key, in order,
// then compacts the whole store. A later record with the same key
// replaces an earlier one. The first failed write aborts the load and
// leaves the writes before it in place.
func (l *Loader) Load(ctx context.Context, records []domain.Record) (LoadResult, error) {
	var result LoadResult
	owners := make(map[int64]domain.Record, len(records))

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		key := EncodeKey(rec.Timestamp)
		if err := l.store.Put(ctx, key, []byte(rec.Content)); err != nil {
			return result, fmt.Errorf("%w: record %d (%s id %d): %w", domain.ErrStoreWrite, i, rec.Table, rec.ID, err)
		}
		result.Written++

		if rec.HasSentinelDate() {
			result.SentinelKeyed++
		}

		secs := rec.Timestamp.Unix()
		if prev, ok := owners[secs]; ok {
			result.Overwritten++
			logger.Debug("Key %d: %s id %d replaces %s id %d", secs, rec.Table, rec.ID, prev.Table, prev.ID)
		}
		owners[secs] = domain.Record{ID: rec.ID, Table: rec.Table}
	}

	logger.Debug("Compacting store after %d writes", result.Written)
	if err := l.store.CompactAll(ctx); err != nil {
		return result, fmt.Errorf("%w: %w", domain.ErrStoreCompact, err)
	}

	return result, nil
}
