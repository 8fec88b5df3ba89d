package main

import (
	"fmt"
	"strings"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/config"
	"github.com/matsen/cordx/internal/wordcloud"
	"github.com/spf13/cobra"
)

// reportFlags are shared by every command that aggregates a year range.
type reportFlags struct {
	years          string
	top            int
	includeUnknown bool
	noCloud        bool
}

func (f *reportFlags) register(cmd *cobra.Command, withCloud bool) {
	cmd.Flags().StringVar(&f.years, "years", "", "Year range: exact (2020), range (2020:2021), or open (2020: or :2021)")
	cmd.Flags().IntVar(&f.top, "top", 0, "Length of the top journal and source lists (0 hides them; default from config)")
	cmd.Flags().BoolVar(&f.includeUnknown, "include-unknown", false, "Count papers with no journal or source under \"unknown\"")
	if withCloud {
		cmd.Flags().BoolVar(&f.noCloud, "no-cloud", false, "Skip word cloud generation")
	}
}

// options builds aggregation options from config and the flags that were set.
func (f *reportFlags) options(cmd *cobra.Command, cfg *config.Config) aggregate.Options {
	opts := aggregate.Options{
		TopN:           cfg.TopN,
		PreviewRows:    cfg.PreviewRows,
		IncludeUnknown: cfg.IncludeUnknown || f.includeUnknown,
		CloudOptions:   cfg.WordCloud,
		SkipCloud:      f.noCloud,
	}
	if cmd.Flags().Changed("top") {
		if f.top < 0 {
			exitWithError(ExitError, "invalid --top %d: must be >= 0", f.top)
		}
		opts.TopN = f.top
		if f.top == 0 {
			opts.TopN = -1 // Explicit 0 hides the lists
		}
	}
	return opts
}

var reportOpts reportFlags

func init() {
	reportOpts.register(reportCmd, true)
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize papers for a year range",
	Long: `Summarize the papers published in a year range.

The report contains a preview of the first rows, publications per year,
the top journals and sources, and a word cloud of the abstracts.

Without --years the configured range (default 2020:2021) is used, clamped
to the years present in the data.

Examples:
  cordx report
  cordx report --years 2019:2021 --top 5 --human
  cordx report --years 2020: --no-cloud`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	ds := mustLoadDataset(cfg)
	from, to := mustResolveYears(reportOpts.years, cfg, ds)

	rep, err := aggregate.Aggregate(ds, from, to, reportOpts.options(cmd, cfg))
	if err != nil {
		exitForAggregateError(err)
	}

	if humanOutput {
		printReportHuman(rep)
		return nil
	}
	return outputJSON(rep)
}

func printReportHuman(rep *aggregate.Report) {
	s := rep.Summary
	fmt.Printf("Papers %d-%d: %d of %d (%d with abstracts, mean %.1f words, %d journals)\n",
		rep.YearMin, rep.YearMax, s.Papers, s.DatasetPapers, s.WithAbstract, s.MeanAbstractLen, s.DistinctJournals)

	if len(rep.Preview) > 0 {
		fmt.Println("\nPreview:")
		for _, p := range rep.Preview {
			fmt.Printf("  %-*s  %-20s  %s\n", PreviewTitleMaxLen,
				truncateString(p.Title.OrElse("(untitled)"), PreviewTitleMaxLen),
				truncateString(orDash(p.Journal), 20), yearString(p))
		}
	}

	if len(rep.YearCounts) > 0 {
		fmt.Println("\nPublications by year:")
		for _, yc := range rep.YearCounts {
			fmt.Printf("  %d  %d\n", yc.Year, yc.Count)
		}
	}

	printCategoryCounts("Top journals", rep.TopJournals)
	printCategoryCounts("Top sources", rep.TopSources)

	wc := rep.WordCloud
	switch wc.Status {
	case aggregate.CloudImage:
		fmt.Printf("\nWord cloud: %s\n", topWords(wc.Cloud, 10))
	case aggregate.CloudNothingToDisplay:
		fmt.Printf("\nWord cloud: nothing to display (%s)\n", wc.Reason)
	}
}

func printCategoryCounts(title string, counts []aggregate.CategoryCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for i, c := range counts {
		fmt.Printf("  %2d. %-40s %d\n", i+1, truncateString(c.Name, 40), c.Count)
	}
}

// topWords lists the n largest words of a cloud.
func topWords(c *wordcloud.Cloud, n int) string {
	if c == nil {
		return ""
	}
	var words []string
	for i, w := range c.Words {
		if i >= n {
			break
		}
		words = append(words, w.Word)
	}
	return strings.Join(words, ", ")
}
