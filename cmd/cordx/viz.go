package main

import (
	"fmt"
	"os"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/viz"
	"github.com/spf13/cobra"
)

var (
	vizOutput string
	vizTitle  string
	vizOpts   reportFlags
)

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizTitle, "title", "", "Page title")
	vizOpts.register(vizCmd, false)
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate a static HTML dashboard",
	Long: `Generate a self-contained HTML dashboard for a year range.

The page shows the preview table, bar charts of publications per year,
top journals and top sources, and the abstract word cloud. Charts are
inline SVG, so the file works offline.

Examples:
  # Generate HTML to stdout
  cordx viz > dashboard.html

  # Generate to file
  cordx viz --years 2019:2021 --output dashboard.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	from, to := mustResolveYears(vizOpts.years, cfg, ds)

	aggOpts := vizOpts.options(cmd, cfg)
	rep, err := aggregate.Aggregate(ds, from, to, aggOpts)
	if err != nil {
		exitForAggregateError(err)
	}

	opts := viz.DefaultOptions()
	if vizTitle != "" {
		opts.Title = vizTitle
	}
	opts.TopN = aggOpts.TopN
	html, err := viz.GenerateHTML(rep, opts)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	if vizOutput == "" {
		fmt.Print(html)
		return nil
	}
	if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if humanOutput {
		fmt.Printf("Dashboard written to %s\n", vizOutput)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: vizOutput})
	}
	return nil
}
