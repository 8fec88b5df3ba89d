package main

import (
	"errors"
	"fmt"

	"github.com/matsen/cordx/internal/paper"
	"github.com/spf13/cobra"
)

// Bounds used for open-ended --years when no dataset is loaded.
const (
	minSearchYear = 1
	maxSearchYear = 9999
)

var (
	searchLimit    int
	searchYears    string
	searchAbstract bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringVar(&searchYears, "years", "", "List papers in a year range instead of searching text")
	searchCmd.Flags().BoolVar(&searchAbstract, "abstract", false, "Include abstracts in human output")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search titles and abstracts in the SQLite cache",
	Long: `Search the SQLite cache built by 'cordx rebuild'.

A query runs a full-text search over titles and abstracts. Every word
must match. Punctuation and words like OR or NOT are matched as plain
text, not as query operators. Results are in file order.

With --years and no query, papers in the range are listed instead.

Examples:
  cordx search "spike protein"
  cordx search vaccine --limit 5 --human --abstract
  cordx search --years 2020:2020`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var errCacheEmpty = errors.New("cache is empty")

// counter is the part of storage.DB checkCache needs.
type counter interface {
	Count() (int, error)
}

// checkCache reports whether the cache can be searched.
func checkCache(db counter) error {
	n, err := db.Count()
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}
	if n == 0 {
		return errCacheEmpty
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	if err := checkCache(db); err != nil {
		if errors.Is(err, errCacheEmpty) {
			exitWithError(ExitConfigError, "%v\n\nRun 'cordx rebuild' to build it.", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	var papers []paper.Paper
	var err error
	switch {
	case len(args) > 0:
		papers, err = db.Search(args[0], searchLimit)
	case searchYears != "":
		from, to, perr := parseYearRange(searchYears)
		if perr != nil {
			exitWithError(ExitError, "invalid --years: %v", perr)
		}
		if from == 0 {
			from = minSearchYear
		}
		if to == 0 {
			to = maxSearchYear
		}
		papers, err = db.ListRange(from, to, searchLimit)
	default:
		exitWithError(ExitError, "must specify a query or --years")
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// Empty result is not an error
	if papers == nil {
		papers = []paper.Paper{}
	}

	if !humanOutput {
		return outputJSON(papers)
	}
	if len(papers) == 0 {
		fmt.Println("No papers found")
		return nil
	}
	fmt.Printf("Found %d papers:\n\n", len(papers))
	for i, p := range papers {
		printPaperSummary(i+1, p, searchAbstract)
	}
	return nil
}
