// Package aggregate computes the dashboard figures for a year range.
package aggregate

import (
	"errors"
	"fmt"

	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/paper"
	"github.com/matsen/cordx/internal/wordcloud"
)

// Defaults used when Options fields are zero.
const (
	DefaultTopN        = 10
	DefaultPreviewRows = 5
)

// ErrEmptyDataset is returned when the loaded dataset has no rows.
// An empty filtered view is not an error.
var ErrEmptyDataset = errors.New("dataset contains no rows")

// EmptyDatasetError reports that there is nothing to aggregate.
type EmptyDatasetError struct {
	Path string
}

func (e *EmptyDatasetError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%v: %s", ErrEmptyDataset, e.Path)
	}
	return ErrEmptyDataset.Error()
}

func (e *EmptyDatasetError) Unwrap() error {
	return ErrEmptyDataset
}

// Options control the aggregation.
type Options struct {
	TopN           int  // Length limit for the journal and source lists; 0 means DefaultTopN
	PreviewRows    int  // 0 means DefaultPreviewRows
	IncludeUnknown bool // Count absent journal/source under UnknownCategory

	// Word cloud generation. A nil Generator uses the builtin one.
	Generator    wordcloud.Generator
	CloudOptions wordcloud.Options
	SkipCloud    bool
}

// Word cloud outcome statuses.
const (
	CloudImage            = "image"
	CloudNothingToDisplay = "nothing_to_display"
	CloudSkipped          = "skipped"
)

// WordCloud is the word-cloud part of a Report.
type WordCloud struct {
	Status string           `json:"status"`
	Reason string           `json:"reason,omitempty"`
	Cloud  *wordcloud.Cloud `json:"cloud,omitempty"`
}

// NothingToDisplay reports whether the generator refused the corpus.
func (w WordCloud) NothingToDisplay() bool {
	return w.Status == CloudNothingToDisplay
}

// Summary holds headline numbers for the filtered view.
type Summary struct {
	Papers           int     `json:"papers"`
	WithAbstract     int     `json:"with_abstract"`
	MeanAbstractLen  float64 `json:"mean_abstract_words"`
	DistinctJournals int     `json:"distinct_journals"`
	DatasetPapers    int     `json:"dataset_papers"`
}

// Report bundles everything the dashboard shows for one year range.
// All fields are plain data with no presentation decisions.
type Report struct {
	YearMin     int             `json:"year_min"`
	YearMax     int             `json:"year_max"`
	Summary     Summary         `json:"summary"`
	Preview     []paper.Paper   `json:"preview"`
	YearCounts  []YearCount     `json:"year_counts"`
	TopJournals []CategoryCount `json:"top_journals"`
	TopSources  []CategoryCount `json:"top_sources"`
	Corpus      string          `json:"-"`
	WordCloud   WordCloud       `json:"word_cloud"`
}

// Aggregate filters ds to [yearMin, yearMax] and computes the report.
// It fails only when ds itself is empty.
func Aggregate(ds *dataset.Dataset, yearMin, yearMax int, opts Options) (*Report, error) {
	if ds == nil || ds.Len() == 0 {
		e := &EmptyDatasetError{}
		if ds != nil {
			e.Path = ds.Path()
		}
		return nil, e
	}

	opts = opts.withDefaults()
	view := Filter(ds, yearMin, yearMax)
	corpus := Corpus(view)

	report := &Report{
		YearMin:     yearMin,
		YearMax:     yearMax,
		Summary:     summarize(view, ds.Len()),
		Preview:     Preview(view, opts.PreviewRows),
		YearCounts:  CountByYear(view),
		TopJournals: TopCategories(view, JournalOf, opts.TopN, opts.IncludeUnknown),
		TopSources:  TopCategories(view, SourceOf, opts.TopN, opts.IncludeUnknown),
		Corpus:      corpus,
	}

	if opts.SkipCloud {
		report.WordCloud = WordCloud{Status: CloudSkipped}
	} else {
		report.WordCloud = BuildWordCloud(opts.Generator, corpus, opts.CloudOptions)
	}

	return report, nil
}

// BuildWordCloud hands corpus to gen. A refusal becomes a
// nothing-to-display outcome.
func BuildWordCloud(gen wordcloud.Generator, corpus string, opts wordcloud.Options) WordCloud {
	if gen == nil {
		gen = wordcloud.NewBuiltin(nil)
	}
	res := gen.Generate(corpus, opts)
	if cloud, ok := res.Cloud(); ok {
		return WordCloud{Status: CloudImage, Cloud: cloud}
	}
	return WordCloud{Status: CloudNothingToDisplay, Reason: res.Reason()}
}

// withDefaults replaces zero options with their defaults.
// A negative TopN is kept and yields empty top lists.
func (o Options) withDefaults() Options {
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.PreviewRows == 0 {
		o.PreviewRows = DefaultPreviewRows
	}
	return o
}

// summarize computes the headline numbers for view.
func summarize(view []paper.Paper, total int) Summary {
	s := Summary{Papers: len(view), DatasetPapers: total}
	journals := make(map[string]struct{})
	words := 0
	for _, p := range view {
		if p.Abstract.Present() {
			s.WithAbstract++
			words += p.AbstractWordCount
		}
		if j, ok := p.Journal.Get(); ok {
			journals[j] = struct{}{}
		}
	}
	s.DistinctJournals = len(journals)
	if s.WithAbstract > 0 {
		s.MeanAbstractLen = float64(words) / float64(s.WithAbstract)
	}
	return s
}
