package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ioremap/wpmigrate/internal/adapters/driven/config/file"
	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
)

// Config file keys.
const (
	keySourceDriver       = "source.driver"
	keySourceUser         = "source.user"
	keySourceHost         = "source.host"
	keySourcePort         = "source.port"
	keySourceDatabase     = "source.database"
	keySourcePasswordFile = "source.password_file"
	keySourceTables       = "source.tables"
	keyStorePath          = "store.path"
	keyStoreBlockCacheMB  = "store.block_cache_mb"
	keyStoreBytesPerSync  = "store.bytes_per_sync"
	keyStoreParallelism   = "store.parallelism"
	keyLogVerbose         = "log.verbose"
)

// sourceFlags are shared by commands that connect to the source.
type sourceFlags struct {
	passwordFile string
	user         string
	database     string
	host         string
	port         int
	driver       string
	tables       []string
}

// storeFlags are shared by commands that open the store.
type storeFlags struct {
	path         string
	blockCacheMB int
}

// promptPassword reads the source password from an interactive
// terminal. It returns an empty password when stdin is not a terminal.
var promptPassword = func(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}
	cmd.PrintErr("Source password: ")
	password, err := term.ReadPassword(fd)
	cmd.PrintErrln()
	if err != nil {
		return "", fmt.Errorf("%w: reading password: %w", domain.ErrConfiguration, err)
	}
	return string(password), nil
}

// loadConfigStore opens the config file named by --config, or the
// default file if it exists. An explicitly named file must exist.
func loadConfigStore() (driven.ConfigStore, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
		}
		store, err := file.NewConfigStore(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfiguration, configPath, err)
		}
		return store, nil
	}

	path, err := file.DefaultConfigPath()
	if err != nil {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	store, err := file.NewConfigStore(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfiguration, path, err)
	}
	return store, nil
}

// applyConfigStore overlays values present in the config file.
func applyConfigStore(cfg *domain.MigrationConfig, passwordFile *string, store driven.ConfigStore) {
	if v := store.GetString(keySourceDriver); v != "" {
		cfg.Source.Driver = v
	}
	if v := store.GetString(keySourceUser); v != "" {
		cfg.Source.User = v
	}
	if v := store.GetString(keySourceHost); v != "" {
		cfg.Source.Host = v
	}
	if v := store.GetInt(keySourcePort); v != 0 {
		cfg.Source.Port = v
	}
	if v := store.GetString(keySourceDatabase); v != "" {
		cfg.Source.Database = v
	}
	if v := store.GetString(keySourcePasswordFile); v != "" {
		*passwordFile = v
	}
	if v := store.GetStringSlice(keySourceTables); len(v) > 0 {
		cfg.Tables = v
	}
	if v := store.GetString(keyStorePath); v != "" {
		cfg.Store.Path = v
	}
	if v := store.GetInt(keyStoreBlockCacheMB); v != 0 {
		cfg.Store.BlockCacheMB = v
	}
	if v := store.GetInt(keyStoreBytesPerSync); v != 0 {
		cfg.Store.BytesPerSync = v
	}
	if v := store.GetInt(keyStoreParallelism); v != 0 {
		cfg.Store.Parallelism = v
	}
}

// applySourceFlags overlays flags the user set explicitly.
func applySourceFlags(cmd *cobra.Command, cfg *domain.MigrationConfig, passwordFile *string, f *sourceFlags) {
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Source.Driver = f.driver
	}
	if flags.Changed("user") {
		cfg.Source.User = f.user
	}
	if flags.Changed("host") {
		cfg.Source.Host = f.host
	}
	if flags.Changed("port") {
		cfg.Source.Port = f.port
	}
	if flags.Changed("db-name") {
		cfg.Source.Database = f.database
	}
	if flags.Changed("password-file") {
		*passwordFile = f.passwordFile
	}
	if flags.Changed("table") {
		cfg.Tables = f.tables
	}
}

// applyStoreFlags overlays store flags the user set explicitly.
func applyStoreFlags(cmd *cobra.Command, cfg *domain.MigrationConfig, f *storeFlags) {
	flags := cmd.Flags()
	if flags.Changed("output-db") {
		cfg.Store.Path = f.path
	}
	if flags.Changed("block-cache-mb") {
		cfg.Store.BlockCacheMB = f.blockCacheMB
	}
}

// resolveConfig merges defaults, the config file and flags, in that
// order of increasing precedence. The password is read only when
// withPassword is set.
func resolveConfig(cmd *cobra.Command, src *sourceFlags, dst *storeFlags, withPassword bool) (domain.MigrationConfig, error) {
	cfg := domain.DefaultMigrationConfig()
	var passwordFile string

	store, err := loadConfigStore()
	if err != nil {
		return cfg, err
	}
	if store != nil {
		applyConfigStore(&cfg, &passwordFile, store)
	}
	if src != nil {
		applySourceFlags(cmd, &cfg, &passwordFile, src)
	}
	if dst != nil {
		applyStoreFlags(cmd, &cfg, dst)
	}

	if withPassword {
		switch {
		case passwordFile != "":
			// A named credential file must be readable before any I/O.
			cfg.Source.Password, err = file.ReadPasswordFile(passwordFile)
		case cfg.Source.Driver != domain.DriverSQLite:
			cfg.Source.Password, err = promptPassword(cmd)
		}
		if err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.passwordFile, "password-file", "p", "", "file holding the source password")
	flags.StringVarP(&f.user, "user", "u", domain.DefaultUser, "source user")
	flags.StringVarP(&f.database, "db-name", "d", domain.DefaultDatabase, "source database (file path for sqlite)")
	flags.IntVarP(&f.port, "port", "P", domain.DefaultPort, "source port")
	flags.StringVarP(&f.host, "host", "H", domain.DefaultHost, "source host")
	flags.StringVar(&f.driver, "driver", domain.DriverMySQL, "source driver: mysql, postgres or sqlite")
	flags.StringSliceVarP(&f.tables, "table", "t", nil, "table to migrate, repeatable (default wp_posts,wpnews_posts)")
}

func addStoreFlags(cmd *cobra.Command, f *storeFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.path, "output-db", "o", "", "destination store directory")
	flags.IntVar(&f.blockCacheMB, "block-cache-mb", domain.DefaultBlockCacheMB, "store block cache size in MiB")
}
