package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/storage"
	"github.com/spf13/cobra"
)

var checkOpts reportFlags

func init() {
	checkOpts.register(checkCmd, false)
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the SQLite cache with the data file",
	Long: `Recompute the year counts and top lists in SQL and compare them with
the in-memory aggregation of the data file.

A mismatch usually means the cache is stale; run 'cordx rebuild'.
Exits with code 3 when any figure differs.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckMismatch describes one figure that differs.
type CheckMismatch struct {
	Figure string `json:"figure"`
	Memory any    `json:"memory"`
	SQL    any    `json:"sql"`
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status     string          `json:"status"`
	YearMin    int             `json:"year_min"`
	YearMax    int             `json:"year_max"`
	Papers     int             `json:"papers"`
	Cached     int             `json:"cached"`
	Mismatches []CheckMismatch `json:"mismatches"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	from, to := mustResolveYears(checkOpts.years, cfg, ds)

	opts := checkOpts.options(cmd, cfg)
	opts.SkipCloud = true
	rep, err := aggregate.Aggregate(ds, from, to, opts)
	if err != nil {
		exitForAggregateError(err)
	}

	db := mustOpenDatabase(cfg)
	defer db.Close()

	result := CheckResult{
		Status:     "ok",
		YearMin:    from,
		YearMax:    to,
		Papers:     ds.Len(),
		Mismatches: []CheckMismatch{},
	}
	if result.Cached, err = db.Count(); err != nil {
		exitWithError(ExitError, "counting cache: %v", err)
	}
	if result.Cached != result.Papers {
		result.Mismatches = append(result.Mismatches, CheckMismatch{Figure: "papers", Memory: result.Papers, SQL: result.Cached})
	}

	years, err := db.CountByYear(from, to)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if !slices.Equal(years, rep.YearCounts) {
		result.Mismatches = append(result.Mismatches, CheckMismatch{Figure: "year_counts", Memory: rep.YearCounts, SQL: years})
	}

	for _, c := range []struct {
		figure, column string
		memory         []aggregate.CategoryCount
	}{
		{"top_journals", storage.ColumnJournal, rep.TopJournals},
		{"top_sources", storage.ColumnSource, rep.TopSources},
	} {
		got, err := db.TopValues(c.column, from, to, opts.TopN, opts.IncludeUnknown)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if !slices.Equal(got, c.memory) {
			result.Mismatches = append(result.Mismatches, CheckMismatch{Figure: c.figure, Memory: c.memory, SQL: got})
		}
	}

	if len(result.Mismatches) > 0 {
		result.Status = "mismatch"
	}

	if humanOutput {
		if len(result.Mismatches) == 0 {
			fmt.Printf("Cache agrees with %s for %d-%d (%d papers)\n", cfg.DataPath, from, to, result.Papers)
		} else {
			fmt.Printf("Cache disagrees with %s for %d-%d:\n", cfg.DataPath, from, to)
			for _, m := range result.Mismatches {
				fmt.Printf("  %s: memory %v, sql %v\n", m.Figure, m.Memory, m.SQL)
			}
			fmt.Println("\nRun 'cordx rebuild' to refresh the cache.")
		}
	} else {
		outputJSON(result)
	}

	if len(result.Mismatches) > 0 {
		db.Close()
		os.Exit(ExitDataError)
	}
	return nil
}
