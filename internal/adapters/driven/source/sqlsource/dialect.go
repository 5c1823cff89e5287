package sqlsource

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

// identPattern matches a table name, optionally schema-qualified.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)?$`)

// dialect captures what differs between drivers.
type dialect struct {
	// driverName is the name registered with database/sql.
	driverName string

	// quote wraps one identifier part.
	quote func(part string) string

	// dsn builds the connection string.
	dsn func(cfg domain.SourceConfig) string
}

var dialects = map[string]dialect{
	domain.DriverMySQL: {
		driverName: "mysql",
		quote:      func(p string) string { return "`" + p + "`" },
		dsn:        mysqlDSN,
	},
	domain.DriverPostgres: {
		driverName: "pgx",
		quote:      func(p string) string { return `"` + p + `"` },
		dsn:        postgresDSN,
	},
	domain.DriverSQLite: {
		driverName: "sqlite",
		quote:      func(p string) string { return `"` + p + `"` },
		dsn:        sqliteDSN,
	},
}

func lookupDialect(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("%w: unsupported source driver %q", domain.ErrConfiguration, driver)
	}
	return d, nil
}

// postsQuery builds the per-table query, rejecting unsafe table names.
func (d dialect) postsQuery(table string) (string, error) {
	if !identPattern.MatchString(table) {
		return "", fmt.Errorf("%w: invalid table name %q", domain.ErrInvalidInput, table)
	}
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = d.quote(p)
	}
	return "SELECT ID, post_date, post_content, post_title FROM " + strings.Join(parts, "."), nil
}

// mysqlDSN keeps post_date textual (parseTime off) so the date parser
// sees exactly what is stored, including zero dates.
func mysqlDSN(cfg domain.SourceConfig) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.ParseTime = false
	c.Timeout = 30 * time.Second
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

func postgresDSN(cfg domain.SourceConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else if cfg.User != "" {
		u.User = url.User(cfg.User)
	}
	return u.String()
}

// sqliteDSN treats Database as the file path and opens it query-only.
func sqliteDSN(cfg domain.SourceConfig) string {
	return cfg.Database + "?_pragma=query_only(1)&_pragma=busy_timeout(5000)"
}
