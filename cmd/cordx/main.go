// Package main provides the cordx CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/config"
	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// dataPath overrides the configured data file for one invocation
var dataPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors must be printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cordx",
	Short: "Explore CORD-19 paper metadata",
	Long: `cordx loads a CORD-19 style metadata.csv and summarizes it by publication year.

Core features:
  - Publications per year, top journals and top sources
  - Word cloud of abstract text
  - Static HTML dashboard or a local dashboard server
  - SQLite cache with full-text search over titles and abstracts

All commands output JSON by default; use --human for readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to metadata CSV (overrides config and "+config.DataPathEnv+")")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration and applies --data, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if dataPath != "" {
		c := *cfg
		c.DataPath = config.ExpandPath(dataPath)
		cfg = &c
	}
	return cfg
}

// mustLoadDataset loads the data file named by cfg, exits on error.
// Load failures exit with ExitConfigError; an empty file exits with ExitDataError.
func mustLoadDataset(cfg *config.Config) *dataset.Dataset {
	ds, stats, err := dataset.LoadWithStats(cfg.DataPath)
	if err != nil {
		exitForLoadError(err)
	}
	if stats.SkippedRows > 0 || stats.BadDates > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d malformed rows skipped, %d unparseable dates\n",
			stats.SkippedRows, stats.BadDates)
	}
	mustHaveRows(ds)
	return ds
}

// exitForLoadError maps dataset load failures to exit codes.
func exitForLoadError(err error) {
	if dataset.IsLoadError(err) {
		exitWithError(ExitConfigError, "%v", err)
	}
	exitWithError(ExitError, "loading dataset: %v", err)
}

// mustHaveRows exits with ExitDataError when ds is empty.
func mustHaveRows(ds *dataset.Dataset) {
	if ds.Len() == 0 {
		exitWithError(ExitDataError, "%v", &aggregate.EmptyDatasetError{Path: ds.Path()})
	}
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(cfg *config.Config) *storage.DB {
	path := cfg.ResolvedDBPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		exitWithError(ExitError, "creating database directory: %v", err)
	}
	db, err := storage.OpenDB(path)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// exitForAggregateError maps aggregation failures to exit codes.
func exitForAggregateError(err error) {
	if errors.Is(err, aggregate.ErrEmptyDataset) {
		exitWithError(ExitDataError, "%v", err)
	}
	exitWithError(ExitError, "aggregating: %v", err)
}
