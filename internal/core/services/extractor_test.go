package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

func TestExtractor_PreservesTableAndRowOrder(t *testing.T) {
	src := newMockPostSource()
	src.tables["A"] = []domain.SourceRow{
		row("1", "2020-01-01 00:00:00", "a1", "t"),
		row("2", "2020-01-02 00:00:00", "a2", "t"),
	}
	src.tables["B"] = []domain.SourceRow{
		row("1", "2019-01-01 00:00:00", "b1", "t"),
	}

	records, err := NewExtractor(src).Extract(context.Background(), []string{"A", "B"})

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a1", records[0].Content)
	assert.Equal(t, "a2", records[1].Content)
	assert.Equal(t, "b1", records[2].Content)
	assert.Equal(t, "B", records[2].Table)
	assert.Equal(t, []string{"A", "B"}, src.queried)
}

func TestExtractor_CallerOrderWins(t *testing.T) {
	src := newMockPostSource()
	src.tables["A"] = []domain.SourceRow{row("1", "2020-01-01 00:00:00", "a", "t")}
	src.tables["B"] = []domain.SourceRow{row("1", "2020-01-01 00:00:00", "b", "t")}

	records, err := NewExtractor(src).Extract(context.Background(), []string{"B", "A"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].Content)
	assert.Equal(t, "a", records[1].Content)
}

func TestExtractor_KeepsDuplicatesAcrossTables(t *testing.T) {
	src := newMockPostSource()
	same := row("3", "2020-01-01 00:00:00", "same", "same")
	src.tables["A"] = []domain.SourceRow{same}
	src.tables["B"] = []domain.SourceRow{same}

	records, err := NewExtractor(src).Extract(context.Background(), []string{"A", "B"})

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestExtractor_EmptyTable(t *testing.T) {
	src := newMockPostSource()
	src.tables["A"] = nil
	src.tables["B"] = []domain.SourceRow{row("1", "2020-01-01 00:00:00", "b", "t")}

	records, err := NewExtractor(src).Extract(context.Background(), []string{"A", "B"})

	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExtractor_NoTables(t *testing.T) {
	_, err := NewExtractor(newMockPostSource()).Extract(context.Background(), nil)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestExtractor_QueryErrorAbortsWholeRun(t *testing.T) {
	src := newMockPostSource()
	src.tables["A"] = []domain.SourceRow{row("1", "2020-01-01 00:00:00", "a", "t")}
	src.errs["B"] = errors.New("connection reset")
	src.tables["C"] = []domain.SourceRow{row("1", "2020-01-01 00:00:00", "c", "t")}

	records, err := NewExtractor(src).Extract(context.Background(), []string{"A", "B", "C"})

	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, domain.ErrSourceQuery))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Contains(t, err.Error(), "read B")
	assert.Equal(t, []string{"A", "B"}, src.queried)
}

func TestExtractor_AdapterCategoryNotDoubled(t *testing.T) {
	src := newMockPostSource()
	src.errs["A"] = errors.Join(domain.ErrSourceQuery, errors.New("denied"))

	_, err := NewExtractor(src).Extract(context.Background(), []string{"A"})

	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), domain.ErrSourceQuery.Error()))
}

func TestExtractor_CoercionErrorAbortsWholeRun(t *testing.T) {
	src := newMockPostSource()
	src.tables["A"] = []domain.SourceRow{
		row("1", "2020-01-01 00:00:00", "a", "t"),
		row("oops", "2020-01-01 00:00:00", "b", "t"),
	}

	records, err := NewExtractor(src).Extract(context.Background(), []string{"A"})

	require.Error(t, err)
	assert.Nil(t, records)
	assert.True(t, errors.Is(err, domain.ErrRowCoercion))
	assert.Contains(t, err.Error(), "A row 1")
}
