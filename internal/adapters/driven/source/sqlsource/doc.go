// Package sqlsource reads WordPress-style post tables through database/sql.
//
// Three dialects are supported, each through a registered driver:
//
//   - mysql: github.com/go-sql-driver/mysql (the production source)
//   - postgres: github.com/jackc/pgx/v5/stdlib
//   - sqlite: modernc.org/sqlite, a pure Go driver used for exported
//     snapshots and tests
//
// Every table is read with a single fixed query:
//
//	SELECT ID, post_date, post_content, post_title FROM <table>
//
// Table names are validated and quoted per dialect before use, since
// they cannot be passed as query parameters. The source is never written.
package sqlsource
