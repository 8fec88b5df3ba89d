package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/cordx/internal/paper"
)

// Column names recognized in the header row.
const (
	ColAbstract    = "abstract"
	ColJournal     = "journal"
	ColSource      = "source"
	ColPublishTime = "publish_time"
	ColTitle       = "title"
	ColCordUID     = "cord_uid"
	ColDOI         = "doi"
	ColURL         = "url"
)

// RequiredColumns must be present in every data file.
var RequiredColumns = []string{ColAbstract, ColJournal, ColSource, ColPublishTime}

// columnAliases maps alternate header names to canonical ones.
// CORD-19 metadata.csv names the source column source_x.
var columnAliases = map[string]string{
	"source_x": ColSource,
}

// Stats summarizes data-quality issues seen while loading.
// None of these abort the load.
type Stats struct {
	Rows        int `json:"rows"`
	BadDates    int `json:"bad_dates"`    // Non-empty publish_time that did not parse
	MissingDate int `json:"missing_date"` // Empty publish_time
	SkippedRows int `json:"skipped_rows"` // Rows the CSV reader could not parse at all
}

// Load reads a delimited metadata file.
// Files ending in .tsv or .tab are tab-separated; everything else is CSV.
func Load(path string) (*Dataset, error) {
	ds, _, err := LoadWithStats(path)
	return ds, err
}

// LoadWithStats is Load, also returning data-quality counters.
func LoadWithStats(path string) (*Dataset, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, Stats{}, &LoadError{Path: path, Reason: ErrFileNotFound, Err: err}
		}
		return nil, Stats{}, &LoadError{Path: path, Reason: ErrUnreadable, Err: err}
	}
	defer f.Close()

	papers, stats, err := Parse(f, delimiterFor(path))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, stats, err
	}

	return &Dataset{path: path, papers: papers}, stats, nil
}

// delimiterFor picks the field separator from the file extension.
func delimiterFor(path string) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	default:
		return ','
	}
}

// Parse reads papers from r. The first record must be the header.
// Returned errors are always *LoadError with an empty Path.
func Parse(r io.Reader, delim rune) ([]paper.Paper, Stats, error) {
	var stats Stats

	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = delim
	cr.FieldsPerRecord = -1 // Ragged rows are padded, not rejected
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, stats, &LoadError{Reason: ErrNoHeader}
		}
		return nil, stats, &LoadError{Reason: ErrNoHeader, Err: err}
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, stats, err
	}

	var papers []paper.Paper
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				stats.SkippedRows++
				continue
			}
			return nil, stats, &LoadError{Reason: ErrUnreadable, Err: err}
		}

		p := cols.paper(rec)
		raw := cols.cell(rec, ColPublishTime)
		if strings.TrimSpace(raw) == "" {
			stats.MissingDate++
		} else if !p.PublishTime.Present() {
			stats.BadDates++
		}
		papers = append(papers, p)
	}

	stats.Rows = len(papers)
	return papers, stats, nil
}

// columnIndex maps canonical column names to record positions.
type columnIndex map[string]int

// indexColumns resolves the header, checking required columns.
func indexColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			key = canonical
		}
		// First occurrence wins
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}

	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &LoadError{Reason: ErrMissingColumn, Column: name}
		}
	}
	return cols, nil
}

// cell returns the raw value of a column, or "" if the column or field is missing.
func (c columnIndex) cell(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// text returns a column as an optional string; blank cells are Absent.
func (c columnIndex) text(rec []string, name string) paper.Optional[string] {
	v := c.cell(rec, name)
	if strings.TrimSpace(v) == "" {
		return paper.None[string]()
	}
	return paper.Some(v)
}

// paper converts one record into a Paper with derived columns filled in.
func (c columnIndex) paper(rec []string) paper.Paper {
	return paper.New(paper.Paper{
		CordUID:     c.text(rec, ColCordUID),
		DOI:         c.text(rec, ColDOI),
		URL:         c.text(rec, ColURL),
		Title:       c.text(rec, ColTitle),
		Abstract:    c.text(rec, ColAbstract),
		Journal:     c.text(rec, ColJournal),
		Source:      c.text(rec, ColSource),
		PublishTime: ParseDate(c.cell(rec, ColPublishTime)),
	})
}
