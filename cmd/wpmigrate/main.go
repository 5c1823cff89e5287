// Command wpmigrate copies WordPress posts into an ordered key-value store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ioremap/wpmigrate/internal/adapters/driven/source/sqlsource"
	"github.com/ioremap/wpmigrate/internal/adapters/driven/storage/pebble"
	"github.com/ioremap/wpmigrate/internal/adapters/driving/cli"
	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetAdapters(adapters())

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func adapters() cli.Adapters {
	return cli.Adapters{
		OpenSource: func(ctx context.Context, cfg domain.SourceConfig) (driven.PostSource, error) {
			src, err := sqlsource.Open(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return src, nil
		},
		OpenStore: func(cfg domain.StoreConfig) (driven.OrderedStore, error) {
			store, err := pebble.Open(cfg)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	}
}
