package main

import (
	"fmt"
	"os"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportYears  string
	exportAll    bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().StringVar(&exportYears, "years", "", "Year range to export (default from config)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every row, including papers without a year")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export papers as JSONL",
	Long: `Write the papers of a year range as JSON Lines, one paper per line,
in file order. Absent values are written as null.

The output can be loaded back with 'cordx rebuild --from-jsonl'.

Examples:
  cordx export --years 2020:2021 -o covid.jsonl
  cordx export --all > everything.jsonl`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)

	papers := ds.Papers()
	if !exportAll {
		from, to := mustResolveYears(exportYears, cfg, ds)
		papers = aggregate.Filter(ds, from, to)
	}

	if exportOutput == "" {
		if err := storage.WriteJSONL(os.Stdout, papers); err != nil {
			return fmt.Errorf("writing JSONL: %w", err)
		}
		return nil
	}

	if err := storage.WriteJSONLFile(exportOutput, papers); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if humanOutput {
		fmt.Printf("Exported %d papers to %s\n", len(papers), exportOutput)
	} else {
		outputJSON(StatusResponse{Status: "exported", Path: exportOutput, Count: len(papers)})
	}
	return nil
}
