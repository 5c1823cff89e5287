package sqlsource

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.PostSource = (*Source)(nil)

// Source reads post rows from a database/sql connection.
type Source struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the source described by cfg and verifies the
// connection before returning.
func Open(ctx context.Context, cfg domain.SourceConfig) (*Source, error) {
	d, err := lookupDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driverName, d.dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceConnect, err)
	}
	// The migration is single-threaded.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceConnect, cfg.Driver, err)
	}

	logger.Debug("Connected to %s source %s", cfg.Driver, cfg.Database)
	return &Source{db: db, dialect: d}, nil
}

// New wraps an already-open connection.
func New(db *sql.DB, driver string) (*Source, error) {
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}
	return &Source{db: db, dialect: d}, nil
}

// ReadPosts returns every row of table in the order the database
// returned them. Values are left as the driver produced them.
func (s *Source) ReadPosts(ctx context.Context, table string) ([]domain.SourceRow, error) {
	query, err := s.dialect.postsQuery(table)
	if err != nil {
		return nil, err
	}

	logger.Debug("Query: %s", query)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceQuery, err)
	}
	defer rows.Close()

	var result []domain.SourceRow
	for rows.Next() {
		var r domain.SourceRow
		if err := rows.Scan(&r.ID, &r.PostDate, &r.Content, &r.Title); err != nil {
			return nil, fmt.Errorf("%w: scanning row %d: %w", domain.ErrSourceQuery, len(result), err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceQuery, err)
	}

	return result, nil
}

// Close closes the connection pool.
func (s *Source) Close() error {
	return s.db.Close()
}
