// Package cli implements the wpmigrate command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/logger"
)

// version is set by main from build flags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Adapters opens the driven adapters for a run. main wires the real
// implementations; tests substitute their own.
type Adapters struct {
	// OpenSource connects to the relational source.
	OpenSource func(ctx context.Context, cfg domain.SourceConfig) (driven.PostSource, error)

	// OpenStore opens the destination ordered store.
	OpenStore func(cfg domain.StoreConfig) (driven.OrderedStore, error)
}

var adapters Adapters

// SetAdapters sets the adapter constructors used by commands.
func SetAdapters(a Adapters) {
	adapters = a
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "wpmigrate",
	Short: "Migrate WordPress posts into an ordered key-value store",
	Long: `wpmigrate copies posts from WordPress tables into an embedded
ordered key-value store, keyed by each post's publication time.

Run "wpmigrate migrate" to perform a migration, and "wpmigrate dump"
or "wpmigrate get" to inspect the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		v := verbose
		if !cmd.Flags().Changed("verbose") {
			// Config errors are reported by the command itself.
			if store, err := loadConfigStore(); err == nil && store != nil {
				v = store.GetBool(keyLogVerbose)
			}
		}
		logger.SetVerbose(v)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and diagnostic details")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.wpmigrate/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
