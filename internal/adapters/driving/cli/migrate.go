package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ioremap/wpmigrate/internal/adapters/driven/storage/memory"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/core/services"
)

var (
	migrateSource sourceFlags
	migrateStore  storeFlags
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy posts from the source database into the store",
	Long: `Reads every row of the configured post tables, in order, and writes
each post's content into the store under its publication time.

Posts whose date cannot be parsed are still migrated, keyed at epoch
zero, and reported on stderr. When two posts share a publication time
the one read later replaces the earlier one. The store is compacted
once all posts are written.`,
	Example: `  wpmigrate migrate -p ~/.wp-password -o /var/lib/posts
  wpmigrate migrate --driver sqlite -d wp.sqlite -o ./posts --table wp_posts`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	addSourceFlags(migrateCmd, &migrateSource)
	addStoreFlags(migrateCmd, &migrateStore)
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "extract and load into memory without touching the store")
	rootCmd.AddCommand(migrateCmd)
}

// countPrinter prints the extracted record count before loading.
type countPrinter struct {
	out io.Writer
}

func (p countPrinter) Extracted(count int) {
	fmt.Fprintf(p.out, "posts: %d\n", count)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if adapters.OpenSource == nil || adapters.OpenStore == nil {
		return errors.New("migration adapters not configured")
	}

	cfg, err := resolveConfig(cmd, &migrateSource, &migrateStore, true)
	if err != nil {
		return err
	}
	cfg.DryRun = migrateDryRun
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	source, err := adapters.OpenSource(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("could not read posts: %w", err)
	}
	defer source.Close()

	openStore := func(context.Context) (driven.OrderedStore, error) {
		if cfg.DryRun {
			return memory.NewOrderedStore(), nil
		}
		return adapters.OpenStore(cfg.Store)
	}

	migrator := services.NewMigrator(source, openStore, countPrinter{out: cmd.OutOrStdout()})
	report, err := migrator.Migrate(ctx, cfg.Tables)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if cfg.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "dry run: %d writes, %d sentinel-keyed, %d overwritten\n",
			report.Written, report.SentinelKeyed, report.Overwritten)
	}
	return nil
}
