// Package dataset loads the paper metadata table into an immutable Dataset.
package dataset

import (
	"github.com/matsen/cordx/internal/paper"
)

// Dataset is an ordered, read-only sequence of papers.
// It is safe for concurrent readers.
type Dataset struct {
	path   string
	papers []paper.Paper
}

// FromPapers builds a Dataset from already-constructed papers.
// Derived columns are recomputed so they always match the row's fields.
func FromPapers(papers []paper.Paper) *Dataset {
	rows := make([]paper.Paper, len(papers))
	for i, p := range papers {
		rows[i] = paper.New(p)
	}
	return &Dataset{papers: rows}
}

// Path returns the file the dataset was loaded from ("" if built in memory).
func (d *Dataset) Path() string {
	return d.path
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.papers)
}

// At returns row i.
func (d *Dataset) At(i int) paper.Paper {
	return d.papers[i]
}

// Each calls fn for every row in file order until fn returns false.
func (d *Dataset) Each(fn func(i int, p paper.Paper) bool) {
	for i, p := range d.papers {
		if !fn(i, p) {
			return
		}
	}
}

// Papers returns a copy of all rows.
func (d *Dataset) Papers() []paper.Paper {
	out := make([]paper.Paper, len(d.papers))
	copy(out, d.papers)
	return out
}

// YearBounds returns the smallest and largest present year.
// ok is false when no row has a year.
func (d *Dataset) YearBounds() (min, max int, ok bool) {
	for _, p := range d.papers {
		y, present := p.Year.Get()
		if !present {
			continue
		}
		if !ok || y < min {
			min = y
		}
		if !ok || y > max {
			max = y
		}
		ok = true
	}
	return min, max, ok
}
