package domain

import (
	"fmt"
	"strings"
)

// Source drivers understood by the SQL source adapter.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Defaults mirror the deployment the tool was written for.
const (
	DefaultUser         = "s0mbre"
	DefaultDatabase     = "ioremap_net_wp"
	DefaultHost         = "localhost"
	DefaultPort         = 3306
	DefaultBlockCacheMB = 1024
	DefaultBytesPerSync = 1024 * 1024
	DefaultParallelism  = 4
)

// DefaultTables returns the tables migrated when none are configured:
// the primary posts table followed by the news posts table.
func DefaultTables() []string {
	return []string{"wp_posts", "wpnews_posts"}
}

// SourceConfig describes how to reach the relational source.
type SourceConfig struct {
	Driver   string
	User     string
	Password string
	Host     string
	Port     int
	Database string
}

// StoreConfig describes the destination ordered store.
type StoreConfig struct {
	// Path is the store directory. Created if missing.
	Path string

	// BlockCacheMB sizes the block cache used for point lookups.
	BlockCacheMB int

	// BytesPerSync bounds how much is written between background syncs.
	BytesPerSync int

	// Parallelism caps concurrent background compactions.
	Parallelism int
}

// MigrationConfig is the fully resolved configuration for one run.
type MigrationConfig struct {
	Source SourceConfig
	Store  StoreConfig

	// Tables are migrated in order; later rows win key collisions.
	Tables []string

	// DryRun loads into an in-memory store instead of Store.Path.
	DryRun bool
}

// DefaultMigrationConfig returns a config populated with defaults.
// Store.Path and Source.Password have no default.
func DefaultMigrationConfig() MigrationConfig {
	return MigrationConfig{
		Source: SourceConfig{
			Driver:   DriverMySQL,
			User:     DefaultUser,
			Host:     DefaultHost,
			Port:     DefaultPort,
			Database: DefaultDatabase,
		},
		Store: StoreConfig{
			BlockCacheMB: DefaultBlockCacheMB,
			BytesPerSync: DefaultBytesPerSync,
			Parallelism:  DefaultParallelism,
		},
		Tables: DefaultTables(),
	}
}

// Validate checks that the config is complete enough to start a run.
func (c MigrationConfig) Validate() error {
	switch c.Source.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Source.Host == "" {
			return fmt.Errorf("%w: source host is required", ErrConfiguration)
		}
		if c.Source.Port <= 0 || c.Source.Port > 65535 {
			return fmt.Errorf("%w: source port %d out of range", ErrConfiguration, c.Source.Port)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported source driver %q", ErrConfiguration, c.Source.Driver)
	}

	if c.Source.Database == "" {
		return fmt.Errorf("%w: source database is required", ErrConfiguration)
	}
	if !c.DryRun && c.Store.Path == "" {
		return fmt.Errorf("%w: output store path is required", ErrConfiguration)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("%w: at least one table is required", ErrConfiguration)
	}
	for _, t := range c.Tables {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: empty table name", ErrConfiguration)
		}
	}
	return nil
}
