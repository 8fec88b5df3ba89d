package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/storage"
	"github.com/spf13/cobra"
)

var rebuildFromJSONL string

func init() {
	rebuildCmd.Flags().StringVar(&rebuildFromJSONL, "from-jsonl", "", "Build from a JSONL export instead of the CSV")
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the SQLite cache from the data file",
	Long: `Rebuild the SQLite query cache used by search and check.

The cache is written to db_path, or cordx.db next to the data file. Run
this again whenever the CSV changes; the cache is never updated in place.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status   string `json:"status"`
	Papers   int    `json:"papers"`
	Database string `json:"database"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	var ds *dataset.Dataset
	if rebuildFromJSONL != "" {
		papers, err := storage.ReadJSONL(rebuildFromJSONL)
		if errors.Is(err, fs.ErrNotExist) {
			exitWithError(ExitConfigError, "%s not found", rebuildFromJSONL)
		}
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", rebuildFromJSONL, err)
		}
		ds = dataset.FromPapers(papers)
		if ds.Len() == 0 {
			exitWithError(ExitDataError, "%s has no papers", rebuildFromJSONL)
		}
	} else {
		ds = mustLoadDataset(cfg)
	}

	db := mustOpenDatabase(cfg)
	defer db.Close()

	n, err := db.RebuildFromDataset(ds)
	if err != nil {
		exitWithError(ExitError, "rebuilding database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt %s with %d papers\n", cfg.ResolvedDBPath(), n)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Papers: n, Database: cfg.ResolvedDBPath()})
	}
	return nil
}
