package cli

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ioremap/wpmigrate/internal/adapters/driven/source/sqlsource"
	"github.com/ioremap/wpmigrate/internal/adapters/driven/storage/pebble"
	"github.com/ioremap/wpmigrate/internal/core/domain"
	"github.com/ioremap/wpmigrate/internal/core/ports/driven"
	"github.com/ioremap/wpmigrate/internal/logger"
)

// resetFlags restores every flag under cmd to its default so package
// level commands can be executed more than once.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args in an isolated home
// directory and returns stdout and the logger output.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	stdout := new(bytes.Buffer)
	logs := new(bytes.Buffer)
	resetFlags(rootCmd)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	logger.SetOutput(logs)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
	})

	err := rootCmd.Execute()
	return stdout.String(), logs.String(), err
}

// useAdapters installs a for the duration of the test.
func useAdapters(t *testing.T, a Adapters) {
	t.Helper()
	original := adapters
	SetAdapters(a)
	t.Cleanup(func() { adapters = original })
}

// realAdapters opens sqlite sources and pebble stores.
func realAdapters() Adapters {
	return Adapters{
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

// usePrompt replaces the terminal password prompt.
func usePrompt(t *testing.T, password string) {
	t.Helper()
	original := promptPassword
	promptPassword = func(*cobra.Command) (string, error) { return password, nil }
	t.Cleanup(func() { promptPassword = original })
}

// writeWordPressDB creates a sqlite database with both post tables.
// The news table reuses the first post's date.
func writeWordPressDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wp.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE wp_posts (ID INTEGER PRIMARY KEY, post_date TEXT, post_content TEXT, post_title TEXT)`,
		`CREATE TABLE wpnews_posts (ID INTEGER PRIMARY KEY, post_date TEXT, post_content TEXT, post_title TEXT)`,
		`INSERT INTO wp_posts VALUES (1, '2020-05-01 10:00:00', 'hello', 'first')`,
		`INSERT INTO wp_posts VALUES (2, '0000-00-00 00:00:00', 'draft', 'zero date')`,
		`INSERT INTO wp_posts VALUES (3, '2021-01-01 00:00:00', 'new year', 'third')`,
		`INSERT INTO wpnews_posts VALUES (1, '2020-05-01 10:00:00', 'news', 'news item')`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

// writeFile writes content to name inside a temp directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
