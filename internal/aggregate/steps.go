package aggregate

import (
	"sort"
	"strings"

	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/paper"
)

// UnknownCategory labels papers without a journal or source when
// Options.IncludeUnknown is set.
const UnknownCategory = "unknown"

// YearCount is the number of papers published in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// CategoryCount is the number of papers in one journal or source.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Filter returns the papers whose year lies in [yearMin, yearMax], in
// dataset order. Papers without a year are never included, and an
// inverted range yields an empty result.
func Filter(ds *dataset.Dataset, yearMin, yearMax int) []paper.Paper {
	out := make([]paper.Paper, 0)
	if ds == nil || yearMin > yearMax {
		return out
	}
	ds.Each(func(_ int, p paper.Paper) bool {
		if p.InYearRange(yearMin, yearMax) {
			out = append(out, p)
		}
		return true
	})
	return out
}

// Preview returns the first k papers of view.
func Preview(view []paper.Paper, k int) []paper.Paper {
	if k <= 0 {
		return []paper.Paper{}
	}
	if len(view) < k {
		k = len(view)
	}
	out := make([]paper.Paper, k)
	copy(out, view[:k])
	return out
}

// CountByYear groups view by year, ascending. Years with no papers are
// omitted.
func CountByYear(view []paper.Paper) []YearCount {
	counts := make(map[int]int)
	for _, p := range view {
		if y, ok := p.Year.Get(); ok {
			counts[y]++
		}
	}

	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopCategories counts the values returned by key, sorted by count
// descending with ties kept in first-seen order, cut to topN.
//
// Absent values are skipped unless includeUnknown is set, in which case
// they are counted under UnknownCategory.
func TopCategories(view []paper.Paper, key func(paper.Paper) paper.Optional[string], topN int, includeUnknown bool) []CategoryCount {
	if topN <= 0 {
		return []CategoryCount{}
	}

	index := make(map[string]int)
	var groups []CategoryCount
	for _, p := range view {
		name, ok := key(p).Get()
		if !ok {
			if !includeUnknown {
				continue
			}
			name = UnknownCategory
		}
		i, seen := index[name]
		if !seen {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryCount{Name: name})
		}
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	if len(groups) > topN {
		groups = groups[:topN]
	}
	if groups == nil {
		groups = []CategoryCount{}
	}
	return groups
}

// JournalOf returns a paper's journal.
func JournalOf(p paper.Paper) paper.Optional[string] { return p.Journal }

// SourceOf returns a paper's source.
func SourceOf(p paper.Paper) paper.Optional[string] { return p.Source }

// Corpus joins the present abstracts of view with single spaces.
// Absent abstracts contribute nothing, not even a separator.
func Corpus(view []paper.Paper) string {
	var sb strings.Builder
	first := true
	for _, p := range view {
		abs, ok := p.Abstract.Get()
		if !ok {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		sb.WriteString(abs)
		first = false
	}
	return sb.String()
}
