package driven

import (
	"context"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

// PostSource reads post rows from a relational database.
// The connection is opened by the adapter; the core only reads.
type PostSource interface {
	// ReadPosts returns every row of table in the order the database
	// returned them. Any query or scan error aborts the read.
	ReadPosts(ctx context.Context, table string) ([]domain.SourceRow, error)

	// Close releases the underlying connection.
	Close() error
}
