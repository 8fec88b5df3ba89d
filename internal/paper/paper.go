// Package paper defines the record type for one row of paper metadata.
package paper

import (
	"strings"
	"time"
)

// Paper represents one row of the metadata table.
// Every text column is optional: an empty cell is Absent, not "".
type Paper struct {
	// Identity
	CordUID Optional[string] `json:"cord_uid"`
	DOI     Optional[string] `json:"doi"`
	URL     Optional[string] `json:"url"`

	// Metadata
	Title    Optional[string] `json:"title"`
	Abstract Optional[string] `json:"abstract"`
	Journal  Optional[string] `json:"journal"`
	Source   Optional[string] `json:"source"`

	// Publication date; Absent when the raw value did not parse
	PublishTime Optional[time.Time] `json:"publish_time"`

	// Derived columns
	Year              Optional[int] `json:"year"`
	AbstractWordCount int           `json:"abstract_word_count"`
}

// New builds a Paper and fills in its derived columns.
func New(p Paper) Paper {
	p.Derive()
	return p
}

// Derive recomputes Year and AbstractWordCount from the row's own fields.
func (p *Paper) Derive() {
	p.Year = YearOf(p.PublishTime)
	p.AbstractWordCount = WordCount(p.Abstract.OrElse(""))
}

// YearOf returns the calendar year of t, or Absent.
func YearOf(t Optional[time.Time]) Optional[int] {
	if v, ok := t.Get(); ok {
		return Some(v.Year())
	}
	return None[int]()
}

// WordCount returns the number of whitespace-separated tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// InYearRange reports whether the paper has a year within [lo, hi].
// Papers without a year are never in range.
func (p Paper) InYearRange(lo, hi int) bool {
	y, ok := p.Year.Get()
	return ok && lo <= y && y <= hi
}
