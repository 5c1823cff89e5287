package sqlsource

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

// setupSQLiteSource writes a small WordPress-like database and opens it
// read-only through Open.
func setupSQLiteSource(t *testing.T) *Source {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wp.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE wp_posts (ID INTEGER PRIMARY KEY, post_date TEXT, post_content TEXT, post_title TEXT)`,
		`CREATE TABLE wpnews_posts (ID INTEGER PRIMARY KEY, post_date TEXT, post_content TEXT, post_title TEXT)`,
		`INSERT INTO wp_posts VALUES (7, '2020-05-01 10:00:00', 'hello', 't')`,
		`INSERT INTO wp_posts VALUES (9, 'not-a-date', 'x', 'bad')`,
		`INSERT INTO wpnews_posts VALUES (1, '2019-01-01 00:00:00', 'news', 'n')`,
	}
	for _, stmt := range stmts {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, db.Close())

	src, err := Open(ctx, domain.SourceConfig{Driver: domain.DriverSQLite, Database: path})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, src.Close()) })
	return src
}

func TestSource_ReadPosts(t *testing.T) {
	src := setupSQLiteSource(t)

	rows, err := src.ReadPosts(context.Background(), "wp_posts")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(7), rows[0].ID)
	assert.Equal(t, "2020-05-01 10:00:00", rows[0].PostDate)
	assert.Equal(t, "hello", rows[0].Content)
	assert.Equal(t, "t", rows[0].Title)
	assert.Equal(t, int64(9), rows[1].ID)
	assert.Equal(t, "not-a-date", rows[1].PostDate)
}

func TestSource_ReadPostsSecondTable(t *testing.T) {
	src := setupSQLiteSource(t)

	rows, err := src.ReadPosts(context.Background(), "wpnews_posts")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "news", rows[0].Content)
}

func TestSource_MissingTable(t *testing.T) {
	src := setupSQLiteSource(t)

	_, err := src.ReadPosts(context.Background(), "wp_missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceQuery))
}

func TestSource_InvalidTableName(t *testing.T) {
	src := setupSQLiteSource(t)

	_, err := src.ReadPosts(context.Background(), "wp_posts; DELETE FROM wp_posts")

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSource_IsReadOnly(t *testing.T) {
	src := setupSQLiteSource(t)

	_, err := src.db.ExecContext(context.Background(), `DELETE FROM wp_posts`)

	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), domain.SourceConfig{Driver: "oracle"})

	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestOpen_UnreachableMySQL(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, domain.SourceConfig{
		Driver:   domain.DriverMySQL,
		User:     "u",
		Host:     "127.0.0.1",
		Port:     1,
		Database: "db",
	})

	assert.True(t, errors.Is(err, domain.ErrSourceConnect))
}

func TestNew_WrapsExistingConnection(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "empty.sqlite"))
	require.NoError(t, err)

	src, err := New(db, domain.DriverSQLite)
	require.NoError(t, err)
	defer src.Close()

	_, err = db.Exec(`CREATE TABLE wp_posts (ID INTEGER, post_date TEXT, post_content TEXT, post_title TEXT)`)
	require.NoError(t, err)

	rows, err := src.ReadPosts(context.Background(), "wp_posts")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
