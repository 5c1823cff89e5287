package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ioremap/wpmigrate/internal/adapters/driven/config/file"
	"github.com/ioremap/wpmigrate/internal/core/domain"
)

var (
	configForce  bool
	configSource sourceFlags
	configStore  storeFlags
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Long: `Writes the defaults to the file named by --config, or to
~/.wpmigrate/config.toml. Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long:  `Shows the configuration a migration would use, after applying the config file and flags.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	addSourceFlags(configShowCmd, &configSource)
	addStoreFlags(configShowCmd, &configStore)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		p, err := file.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if configForce {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		return err
	}

	defaults := domain.DefaultMigrationConfig()
	values := []struct {
		key   string
		value any
	}{
		{keySourceDriver, defaults.Source.Driver},
		{keySourceUser, defaults.Source.User},
		{keySourceHost, defaults.Source.Host},
		{keySourcePort, defaults.Source.Port},
		{keySourceDatabase, defaults.Source.Database},
		{keySourcePasswordFile, ""},
		{keySourceTables, defaults.Tables},
		{keyStorePath, ""},
		{keyStoreBlockCacheMB, defaults.Store.BlockCacheMB},
		{keyStoreBytesPerSync, defaults.Store.BytesPerSync},
		{keyStoreParallelism, defaults.Store.Parallelism},
		{keyLogVerbose, false},
	}
	for _, v := range values {
		if err := store.Set(v.key, v.value); err != nil {
			return fmt.Errorf("writing %s: %w", v.key, err)
		}
	}

	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &configSource, &configStore, false)
	if err != nil {
		return err
	}

	cmd.Println("Source:")
	cmd.Printf("  driver:    %s\n", cfg.Source.Driver)
	cmd.Printf("  user:      %s\n", cfg.Source.User)
	cmd.Printf("  host:      %s\n", cfg.Source.Host)
	cmd.Printf("  port:      %d\n", cfg.Source.Port)
	cmd.Printf("  database:  %s\n", cfg.Source.Database)
	cmd.Printf("  tables:    %v\n", cfg.Tables)
	cmd.Println("Store:")
	cmd.Printf("  path:           %s\n", cfg.Store.Path)
	cmd.Printf("  block cache:    %d MiB\n", cfg.Store.BlockCacheMB)
	cmd.Printf("  bytes per sync: %d\n", cfg.Store.BytesPerSync)
	cmd.Printf("  parallelism:    %d\n", cfg.Store.Parallelism)
	return nil
}
