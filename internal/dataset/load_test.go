package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `cord_uid,title,abstract,journal,source_x,publish_time,doi
a1,First,"a b c",Lancet,PMC,2020-03-15,10.1/a
a2,Second,,Nature,Medline,2019,
a3,Third,"viral load",Lancet,PMC,not-a-date,
a4,Fourth,"one two",,,2021-07,
`

// writeFile writes content to name inside a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "metadata.csv", sampleCSV)

	ds, stats, err := LoadWithStats(path)
	if err != nil {
		t.Fatalf("LoadWithStats() error = %v", err)
	}

	if ds.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ds.Len())
	}
	if ds.Path() != path {
		t.Errorf("Path() = %q, want %q", ds.Path(), path)
	}
	if stats.BadDates != 1 {
		t.Errorf("BadDates = %d, want 1", stats.BadDates)
	}

	t.Run("row order preserved", func(t *testing.T) {
		for i, want := range []string{"a1", "a2", "a3", "a4"} {
			if got := ds.At(i).CordUID.OrElse(""); got != want {
				t.Errorf("row %d cord_uid = %q, want %q", i, got, want)
			}
		}
	})

	t.Run("source_x is read as source", func(t *testing.T) {
		if got := ds.At(0).Source.OrElse(""); got != "PMC" {
			t.Errorf("Source = %q, want PMC", got)
		}
	})

	t.Run("derived year", func(t *testing.T) {
		wantYears := []int{2020, 2019, 0, 2021}
		for i, want := range wantYears {
			y, ok := ds.At(i).Year.Get()
			if want == 0 {
				if ok {
					t.Errorf("row %d year = %d, want absent", i, y)
				}
				continue
			}
			if !ok || y != want {
				t.Errorf("row %d year = %d (present=%v), want %d", i, y, ok, want)
			}
		}
	})

	t.Run("word counts", func(t *testing.T) {
		want := []int{3, 0, 2, 2}
		for i, w := range want {
			if got := ds.At(i).AbstractWordCount; got != w {
				t.Errorf("row %d word count = %d, want %d", i, got, w)
			}
		}
	})

	t.Run("empty cells are absent", func(t *testing.T) {
		p := ds.At(3)
		if p.Journal.Present() || p.Source.Present() {
			t.Errorf("empty journal/source should be absent, got %+v / %+v", p.Journal, p.Source)
		}
		if ds.At(1).Abstract.Present() {
			t.Error("empty abstract should be absent")
		}
	})

	t.Run("year bounds", func(t *testing.T) {
		lo, hi, ok := ds.YearBounds()
		if !ok || lo != 2019 || hi != 2021 {
			t.Errorf("YearBounds() = %d, %d, %v, want 2019, 2021, true", lo, hi, ok)
		}
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantReason error
		wantColumn string
	}{
		{
			name:       "empty file",
			content:    "",
			wantReason: ErrNoHeader,
		},
		{
			name:       "missing publish_time",
			content:    "abstract,journal,source\nx,y,z\n",
			wantReason: ErrMissingColumn,
			wantColumn: ColPublishTime,
		},
		{
			name:       "missing abstract",
			content:    "journal,source,publish_time\n",
			wantReason: ErrMissingColumn,
			wantColumn: ColAbstract,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want LoadError")
			}

			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("error %v is not a *LoadError", err)
			}
			if !errors.Is(err, tt.wantReason) {
				t.Errorf("error = %v, want reason %v", err, tt.wantReason)
			}
			if le.Column != tt.wantColumn {
				t.Errorf("Column = %q, want %q", le.Column, tt.wantColumn)
			}
			if le.Path != path {
				t.Errorf("Path = %q, want %q", le.Path, path)
			}
		})
	}

	t.Run("file not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("error = %v, want ErrFileNotFound", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error should wrap os.ErrNotExist")
		}
		if !IsLoadError(err) {
			t.Error("IsLoadError() = false, want true")
		}
	})
}

func TestLoad_HeaderNormalization(t *testing.T) {
	content := "\ufeff Abstract ,JOURNAL,Source,Publish_Time\nhello world,J,S,2020-01-01\n"
	ds, err := Load(writeFile(t, "bom.csv", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ds.At(0).Abstract.OrElse(""); got != "hello world" {
		t.Errorf("Abstract = %q, want %q", got, "hello world")
	}
}

func TestLoad_TSV(t *testing.T) {
	content := "abstract\tjournal\tsource\tpublish_time\na, b\tJ\tS\t2022-02-02\n"
	ds, err := Load(writeFile(t, "metadata.tsv", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := ds.At(0).AbstractWordCount; got != 2 {
		t.Errorf("AbstractWordCount = %d, want 2", got)
	}
}

func TestLoad_RaggedRows(t *testing.T) {
	content := "abstract,journal,source,publish_time\nonly abstract\n"
	ds, err := Load(writeFile(t, "ragged.csv", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p := ds.At(0)
	if p.Journal.Present() || p.PublishTime.Present() {
		t.Errorf("missing trailing fields should be absent, got %+v", p)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw      string
		wantYear int // 0 means absent
	}{
		{"2020-03-15", 2020},
		{"2020", 2020},
		{"2021-07", 2021},
		{"2019/12/31", 2019},
		{"2020-04-01T10:00:00Z", 2020},
		{"2021-01-01T00:30:00+01:00", 2021}, // Offset kept, not shifted into 2020 UTC
		{"2020-12-31T23:30:00-05:00", 2020},
		{"2020 Apr 1", 2020},
		{"  2018-01-01  ", 2018},
		{"", 0},
		{"not-a-date", 0},
		{"2020-13-45", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseDate(tt.raw)
			ts, ok := got.Get()
			if tt.wantYear == 0 {
				if ok {
					t.Errorf("ParseDate(%q) = %v, want absent", tt.raw, ts)
				}
				return
			}
			if !ok || ts.Year() != tt.wantYear {
				t.Errorf("ParseDate(%q) = %v (present=%v), want year %d", tt.raw, ts, ok, tt.wantYear)
			}
		})
	}
}

func TestParse_DoesNotModifySource(t *testing.T) {
	r := strings.NewReader(sampleCSV)
	if _, _, err := Parse(r, ','); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	path := writeFile(t, "metadata.csv", sampleCSV)
	before, _ := os.ReadFile(path)
	if _, err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("Load modified the source file")
	}
}
