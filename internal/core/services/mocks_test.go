package services

import (
	"context"
	"errors"

	"github.com/ioremap/wpmigrate/internal/adapters/driven/storage/memory"
	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
)

// --- Mock implementations for migration testing ---

// mockPostSource implements driven.PostSource with fixed tables.
type mockPostSource struct {
	tables  map[string][]domain.SourceRow
	errs    map[string]error
	queried []string
	closed  bool
}

var _ driven.PostSource = (*mockPostSource)(nil)

func newMockPostSource() *mockPostSource {
	return &mockPostSource{
		tables: make(map[string][]domain.SourceRow),
		errs:   make(map[string]error),
	}
}

func (m *mockPostSource) ReadPosts(_ context.Context, table string) ([]domain.SourceRow, error) {
	m.queried = append(m.queried, table)
	if err, ok := m.errs[table]; ok {
		return nil, err
	}
	rows, ok := m.tables[table]
	if !ok {
		return nil, errors.New("table " + table + " doesn't exist")
	}
	return rows, nil
}

func (m *mockPostSource) Close() error {
	m.closed = true
	return nil
}

// failingStore wraps a memory store and fails the nth Put (1-based)
// or the compaction.
type failingStore struct {
	*memory.OrderedStore
	failPutAt   int
	failCompact bool
	puts        int
}

var _ driven.OrderedStore = (*failingStore)(nil)

var errInjected = errors.New("injected failure")

func (s *failingStore) Put(ctx context.Context, key, value []byte) error {
	s.puts++
	if s.failPutAt > 0 && s.puts == s.failPutAt {
		return errInjected
	}
	return s.OrderedStore.Put(ctx, key, value)
}

func (s *failingStore) CompactAll(ctx context.Context) error {
	if s.failCompact {
		return errInjected
	}
	return s.OrderedStore.CompactAll(ctx)
}

// row builds a SourceRow the way the MySQL driver returns it: all []byte.
func row(id, date, content, title string) domain.SourceRow {
	return domain.SourceRow{
		ID:       []byte(id),
		PostDate: []byte(date),
		Content:  []byte(content),
		Title:    []byte(title),
	}
}

// countingReporter records the extracted count.
type countingReporter struct {
	calls int
	count int
}

func (r *countingReporter) Extracted(count int) {
	r.calls++
	r.count = count
}

// openerFor returns a StoreOpener that hands out store.
func openerFor(store driven.OrderedStore) driven.StoreOpener {
	return func(context.Context) (driven.OrderedStore, error) {
		return store, nil
	}
}
