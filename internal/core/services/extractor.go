package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/logger"
)

// Extractor reads posts from the relational source into Records.
type Extractor struct {
	source driven.PostSource
}

// NewExtractor creates an extractor reading from source.
func NewExtractor(source driven.PostSource) *Extractor {
	return &Extractor{source: source}
}

// Extract reads every row of each table, tables in the given order and
// rows in source order, and returns one Record per row. No row is
// skipped or deduplicated. Any query or coercion error discards
// everything read so far.
func (e *Extractor) Extract(ctx context.Context, tables []string) ([]domain.Record, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: no tables to extract", domain.ErrInvalidInput)
	}

	var records []domain.Record
	for _, table := range tables {
		rows, err := e.source.ReadPosts(ctx, table)
		if err != nil {
			if !errors.Is(err, domain.ErrSourceQuery) {
				err = fmt.Errorf("%w: %w", domain.ErrSourceQuery, err)
			}
			return nil, fmt.Errorf("read %s: %w", table, err)
		}
		logger.Debug("Read %d rows from %s", len(rows), table)

		for i, row := range rows {
			rec, err := RecordFromRow(table, row)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", table, i, err)
			}
			records = append(records, rec)
		}
	}

	return records, nil
}
