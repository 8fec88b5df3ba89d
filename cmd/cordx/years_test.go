package main

import (
	"testing"
	"time"

	"github.com/matsen/cordx/internal/config"
	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/paper"
)

func TestParseYearRange(t *testing.T) {
	tests := []struct {
		spec     string
		wantFrom int
		wantTo   int
		wantErr  bool
	}{
		// Exact year
		{"2020", 2020, 2020, false},

		// Full range
		{"2020:2021", 2020, 2021, false},
		{"2021:2019", 2021, 2019, false}, // Inverted is allowed, it filters to nothing

		// Open-ended ranges
		{"2020:", 2020, 0, false},
		{":2021", 0, 2021, false},
		{":", 0, 0, false},

		// Whitespace
		{"", 0, 0, false},
		{"  2020  ", 2020, 2020, false},
		{" 2020 : 2021 ", 2020, 2021, false},

		// Errors
		{"abc", 0, 0, true},
		{"abc:2021", 0, 0, true},
		{"2020:abc", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			from, to, err := parseYearRange(tt.spec)

			if (err != nil) != tt.wantErr {
				t.Fatalf("parseYearRange(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("parseYearRange(%q) = %d, %d, want %d, %d", tt.spec, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func datasetWithYears(years ...int) *dataset.Dataset {
	papers := make([]paper.Paper, len(years))
	for i, y := range years {
		if y != 0 {
			papers[i].PublishTime = paper.Some(time.Date(y, time.June, 1, 0, 0, 0, 0, time.UTC))
		}
	}
	return dataset.FromPapers(papers)
}

func TestResolveYears(t *testing.T) {
	cfg := config.Default() // 2020:2021

	tests := []struct {
		name     string
		spec     string
		ds       *dataset.Dataset
		wantFrom int
		wantTo   int
	}{
		{"default inside bounds", "", datasetWithYears(2015, 2020, 2022), 2020, 2021},
		{"default clamped to data", "", datasetWithYears(2019, 2020), 2020, 2020},
		{"default outside data", "", datasetWithYears(1990, 1995), 1990, 1995},
		{"default without years", "", datasetWithYears(0, 0), 2020, 2021},
		{"explicit range kept", "2010:2030", datasetWithYears(2019, 2020), 2010, 2030},
		{"open start", ":2020", datasetWithYears(2015, 2022), 2015, 2020},
		{"open end", "2018:", datasetWithYears(2015, 2022), 2018, 2022},
		{"inverted kept", "2021:2020", datasetWithYears(2015, 2022), 2021, 2020},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := resolveYears(tt.spec, cfg, tt.ds)
			if err != nil {
				t.Fatalf("resolveYears() error = %v", err)
			}
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("resolveYears(%q) = %d, %d, want %d, %d", tt.spec, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}

	if _, _, err := resolveYears("x:y", cfg, datasetWithYears(2020)); err == nil {
		t.Error("resolveYears should reject a malformed spec")
	}
}

func mustDefaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}
