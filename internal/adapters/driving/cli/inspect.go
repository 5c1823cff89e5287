package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/core/ports/driving"
	"github.com/ioremap/wpmigrate/internal/core/services"
)

var (
	inspectStore      storeFlags
	dumpChronological bool
	dumpContent       bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print store entries as JSON lines",
	Long: `Prints one JSON object per store entry with its key, decoded time and
content size. Entries are printed in key order, which for little-endian
keys is not chronological; pass --chronological to sort by time.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

var getCmd = &cobra.Command{
	Use:   "get <time>",
	Short: "Print the content stored for a publication time",
	Long: `Looks up one entry. The time is given in the post_date layout
("2006-01-02 15:04:05", UTC) or as Unix seconds.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	for _, cmd := range []*cobra.Command{dumpCmd, getCmd} {
		addStoreFlags(cmd, &inspectStore)
		rootCmd.AddCommand(cmd)
	}
	dumpCmd.Flags().BoolVar(&dumpChronological, "chronological", false, "sort entries by time instead of key bytes")
	dumpCmd.Flags().BoolVar(&dumpContent, "content", false, "include entry content")
}

// dumpLine is one line of dump output.
type dumpLine struct {
	Key     string `json:"key"`
	Unix    int64  `json:"unix"`
	Time    string `json:"time"`
	Bytes   int    `json:"bytes"`
	Content string `json:"content,omitempty"`
}

// openExistingStore opens the store for reading. Unlike migrate it
// refuses to create a missing store.
func openExistingStore(cmd *cobra.Command) (driven.OrderedStore, error) {
	if adapters.OpenStore == nil {
		return nil, errors.New("store adapter not configured")
	}

	cfg, err := resolveConfig(cmd, nil, &inspectStore, false)
	if err != nil {
		return nil, err
	}
	if cfg.Store.Path == "" {
		return nil, fmt.Errorf("%w: output store path is required", domain.ErrConfiguration)
	}
	if _, err := os.Stat(cfg.Store.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: store %s does not exist", domain.ErrStoreOpen, cfg.Store.Path)
	}
	return adapters.OpenStore(cfg.Store)
}

func runDump(cmd *cobra.Command, _ []string) error {
	store, err := openExistingStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	inspector := services.NewInspector(store)
	enc := json.NewEncoder(cmd.OutOrStdout())

	toLine := func(e driving.InspectedEntry) dumpLine {
		line := dumpLine{
			Key:   fmt.Sprintf("%x", e.Key),
			Unix:  e.Timestamp.Unix(),
			Time:  e.Timestamp.Format(time.RFC3339),
			Bytes: len(e.Content),
		}
		if dumpContent {
			line.Content = string(e.Content)
		}
		return line
	}

	if !dumpChronological {
		return inspector.Walk(ctx, func(e driving.InspectedEntry) error {
			return enc.Encode(toLine(e))
		})
	}

	var entries []driving.InspectedEntry
	if err := inspector.Walk(ctx, func(e driving.InspectedEntry) error {
		entries = append(entries, e)
		return nil
	}); err != nil {
		return err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	for _, e := range entries {
		if err := enc.Encode(toLine(e)); err != nil {
			return err
		}
	}
	return nil
}

// parseLookupTime accepts the post_date layout or Unix seconds.
func parseLookupTime(arg string) (time.Time, error) {
	if ts, err := services.ParsePostDateStrict(arg); err == nil {
		return ts, nil
	}
	secs, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is neither %q nor Unix seconds", domain.ErrInvalidInput, arg, domain.PostDateLayout)
	}
	return time.Unix(secs, 0).UTC(), nil
}

func runGet(cmd *cobra.Command, args []string) error {
	at, err := parseLookupTime(args[0])
	if err != nil {
		return err
	}

	store, err := openExistingStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	content, err := services.NewInspector(store).Lookup(context.Background(), at)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", at.Format(domain.PostDateLayout), err)
	}
	_, err = cmd.OutOrStdout().Write(content)
	return err
}
