package driving

import (
	"context"
	"time"
)

// Migrator runs one extract-then-load migration.
type Migrator interface {
	// Migrate extracts every row of tables, in order, and loads them
	// into the destination store followed by a full compaction.
	Migrate(ctx context.Context, tables []string) (*MigrationReport, error)
}

// Reporter receives progress from a running migration.
type Reporter interface {
	// Extracted is called once, after extraction and before loading.
	Extracted(count int)
}

// MigrationReport summarises a completed run.
type MigrationReport struct {
	// RunID identifies this run in diagnostics.
	RunID string

	// Extracted is the number of rows read from the source.
	Extracted int

	// Written is the number of store writes issued.
	Written int

	// SentinelKeyed counts records whose date failed to parse.
	SentinelKeyed int

	// Overwritten counts writes that replaced a key written earlier
	// in the same run.
	Overwritten int

	// ExtractDuration and LoadDuration time the two stages.
	ExtractDuration time.Duration
	LoadDuration    time.Duration
}
