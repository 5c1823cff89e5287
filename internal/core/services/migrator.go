package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/core/ports/driving"
	"github.com/ioremap/wpmigrate/internal/logger"
)

// Ensure Migrator implements the interface.
var _ driving.Migrator = (*Migrator)(nil)

// Migrator runs extraction to completion, then loading.
type Migrator struct {
	extractor *Extractor
	openStore driven.StoreOpener
	reporter  driving.Reporter
}

// NewMigrator creates a migrator from source to the store returned by
// openStore. reporter may be nil.
func NewMigrator(source driven.PostSource, openStore driven.StoreOpener, reporter driving.Reporter) *Migrator {
	return &Migrator{
		extractor: NewExtractor(source),
		openStore: openStore,
		reporter:  reporter,
	}
}

// Migrate extracts all tables, reports the record count, opens the
// store and loads. The store is closed before Migrate returns.
func (m *Migrator) Migrate(ctx context.Context, tables []string) (report *driving.MigrationReport, err error) {
	report = &driving.MigrationReport{RunID: uuid.NewString()}

	logger.Section("Extract")
	logger.Info("Run %s: extracting tables %v", report.RunID, tables)
	start := time.Now()
	records, err := m.extractor.Extract(ctx, tables)
	if err != nil {
		return nil, err
	}
	report.Extracted = len(records)
	report.ExtractDuration = time.Since(start)

	if m.reporter != nil {
		m.reporter.Extracted(len(records))
	}

	logger.Section("Load")
	store, err := m.openStore(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrStoreOpen) {
			err = fmt.Errorf("%w: %w", domain.ErrStoreOpen, err)
		}
		return report, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()

	start = time.Now()
	result, err := NewLoader(store).Load(ctx, records)
	report.Written = result.Written
	report.SentinelKeyed = result.SentinelKeyed
	report.Overwritten = result.Overwritten
	report.LoadDuration = time.Since(start)
	if err != nil {
		return report, err
	}

	logger.Info("Run %s: wrote %d entries (%d sentinel-keyed, %d overwritten) in %s",
		report.RunID, report.Written, report.SentinelKeyed, report.Overwritten, report.LoadDuration)
	return report, nil
}
