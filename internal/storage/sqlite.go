// Package storage handles the SQLite query cache and JSONL export of papers.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/paper"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `row_id, cord_uid, doi, url, title, abstract,
	journal, source, publish_time`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per paper, in file order
		CREATE TABLE IF NOT EXISTS papers (
			row_id INTEGER PRIMARY KEY,
			cord_uid TEXT,
			doi TEXT,
			url TEXT,
			title TEXT,
			abstract TEXT,
			journal TEXT,
			source TEXT,
			publish_time TEXT,
			year INTEGER,
			abstract_word_count INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year) WHERE year IS NOT NULL;

		-- Full-text search over title and abstract
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			row_id UNINDEXED,
			title,
			abstract
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromDataset clears the database and loads every paper of ds.
func (d *DB) RebuildFromDataset(ds *dataset.Dataset) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM papers"); err != nil {
		return 0, fmt.Errorf("clearing papers table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM papers_fts"); err != nil {
		return 0, fmt.Errorf("clearing papers_fts table: %w", err)
	}

	papersStmt, err := tx.Prepare(`
		INSERT INTO papers (
			row_id, cord_uid, doi, url, title, abstract,
			journal, source, publish_time, year, abstract_word_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing papers insert: %w", err)
	}
	defer papersStmt.Close()

	ftsStmt, err := tx.Prepare(`INSERT INTO papers_fts (row_id, title, abstract) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	var insertErr error
	ds.Each(func(i int, p paper.Paper) bool {
		var publishTime, year any
		if t, ok := p.PublishTime.Get(); ok {
			publishTime = t.Format(time.RFC3339)
		}
		if y, ok := p.Year.Get(); ok {
			year = y
		}

		_, insertErr = papersStmt.Exec(
			i, nullable(p.CordUID), nullable(p.DOI), nullable(p.URL),
			nullable(p.Title), nullable(p.Abstract),
			nullable(p.Journal), nullable(p.Source),
			publishTime, year, p.AbstractWordCount,
		)
		if insertErr != nil {
			insertErr = fmt.Errorf("inserting row %d: %w", i, insertErr)
			return false
		}

		if p.Title.Present() || p.Abstract.Present() {
			_, insertErr = ftsStmt.Exec(i, p.Title.OrElse(""), p.Abstract.OrElse(""))
			if insertErr != nil {
				insertErr = fmt.Errorf("inserting fts for row %d: %w", i, insertErr)
				return false
			}
		}
		return true
	})
	if insertErr != nil {
		return 0, insertErr
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return ds.Len(), nil
}

// Count returns the total number of papers.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// CountByYear returns per-year counts for years in [yearMin, yearMax].
func (d *DB) CountByYear(yearMin, yearMax int) ([]aggregate.YearCount, error) {
	rows, err := d.db.Query(`
		SELECT year, COUNT(*)
		FROM papers
		WHERE year IS NOT NULL AND year BETWEEN ? AND ?
		GROUP BY year
		ORDER BY year`, yearMin, yearMax)
	if err != nil {
		return nil, fmt.Errorf("counting by year: %w", err)
	}
	defer rows.Close()

	counts := []aggregate.YearCount{}
	for rows.Next() {
		var yc aggregate.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, yc)
	}
	return counts, rows.Err()
}

// Columns TopValues can group by.
const (
	ColumnJournal = "journal"
	ColumnSource  = "source"
)

// TopValues returns the n most frequent values of column among papers in
// [yearMin, yearMax]. Ties are ordered by first appearance in the file,
// matching aggregate.TopCategories.
func (d *DB) TopValues(column string, yearMin, yearMax, n int, includeUnknown bool) ([]aggregate.CategoryCount, error) {
	switch column {
	case ColumnJournal, ColumnSource:
	default:
		return nil, fmt.Errorf("unknown column: %s", column)
	}
	if n <= 0 {
		return []aggregate.CategoryCount{}, nil
	}

	key := column
	where := "year IS NOT NULL AND year BETWEEN ? AND ?"
	if includeUnknown {
		key = fmt.Sprintf("COALESCE(%s, '%s')", column, aggregate.UnknownCategory)
	} else {
		where += " AND " + column + " IS NOT NULL"
	}

	rows, err := d.db.Query(`
		SELECT `+key+` AS name, COUNT(*) AS n
		FROM papers
		WHERE `+where+`
		GROUP BY name
		ORDER BY n DESC, MIN(row_id) ASC
		LIMIT ?`, yearMin, yearMax, n)
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", column, err)
	}
	defer rows.Close()

	counts := []aggregate.CategoryCount{}
	for rows.Next() {
		var cc aggregate.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}

// Search performs a full-text search over titles and abstracts.
// Results are in file order.
func (d *DB) Search(query string, limit int) ([]paper.Paper, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return []paper.Paper{}, nil
	}

	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE row_id IN (SELECT row_id FROM papers_fts WHERE papers_fts MATCH ?)
		ORDER BY row_id
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// ListRange returns papers with a year in [yearMin, yearMax], in file order.
func (d *DB) ListRange(yearMin, yearMax, limit int) ([]paper.Paper, error) {
	query := `SELECT ` + selectPaperFields + `
		FROM papers
		WHERE year IS NOT NULL AND year BETWEEN ? AND ?
		ORDER BY row_id`
	args := []any{yearMin, yearMax}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(s scanner) (paper.Paper, error) {
	var rowID int
	var cordUID, doi, url, title, abstract, journal, source, publishTime sql.NullString

	err := s.Scan(&rowID, &cordUID, &doi, &url, &title, &abstract, &journal, &source, &publishTime)
	if err != nil {
		return paper.Paper{}, err
	}

	p := paper.Paper{
		CordUID:  optional(cordUID),
		DOI:      optional(doi),
		URL:      optional(url),
		Title:    optional(title),
		Abstract: optional(abstract),
		Journal:  optional(journal),
		Source:   optional(source),
	}
	if publishTime.Valid {
		t, err := time.Parse(time.RFC3339, publishTime.String)
		if err != nil {
			return paper.Paper{}, fmt.Errorf("parsing publish_time for row %d: %w", rowID, err)
		}
		p.PublishTime = paper.Some(t)
	}
	return paper.New(p), nil
}

func scanPapers(rows *sql.Rows) ([]paper.Paper, error) {
	papers := []paper.Paper{}
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// nullable converts an optional string to sql.NullString.
func nullable(o paper.Optional[string]) sql.NullString {
	s, ok := o.Get()
	return sql.NullString{String: s, Valid: ok}
}

// optional converts sql.NullString to an optional string.
func optional(s sql.NullString) paper.Optional[string] {
	if !s.Valid {
		return paper.None[string]()
	}
	return paper.Some(s.String)
}

// prepareFTSQuery turns free text into an FTS5 query that cannot fail to
// parse. Each whitespace-separated term becomes a quoted string, so FTS5
// operators and punctuation are literal and all terms must match.
// Terms with no letters or digits are dropped.
func prepareFTSQuery(query string) string {
	var terms []string
	for _, term := range strings.Fields(query) {
		if !strings.ContainsFunc(term, isWordRune) {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(terms, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
