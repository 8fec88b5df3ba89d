package main

import (
	"strings"
	"testing"

	"github.com/matsen/cordx/internal/paper"
	"github.com/matsen/cordx/internal/wordcloud"
	"github.com/spf13/cobra"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five", 9, "  ")
	want := "one two\n  three\n  four five"
	if got != want {
		t.Errorf("wrapText() = %q, want %q", got, want)
	}
	if got := wrapText("short", 20, "  "); got != "short" {
		t.Errorf("wrapText(short) = %q", got)
	}
}

func TestYearString(t *testing.T) {
	if got := yearString(paper.Paper{Year: paper.Some(2020)}); got != "2020" {
		t.Errorf("yearString(2020) = %q", got)
	}
	if got := yearString(paper.Paper{}); got != "-" {
		t.Errorf("yearString(absent) = %q, want -", got)
	}
}

func TestTopWords(t *testing.T) {
	c := &wordcloud.Cloud{Words: []wordcloud.PlacedWord{{Word: "virus"}, {Word: "spike"}, {Word: "cell"}}}
	if got := topWords(c, 2); got != "virus, spike" {
		t.Errorf("topWords() = %q", got)
	}
	if got := topWords(nil, 2); got != "" {
		t.Errorf("topWords(nil) = %q", got)
	}
}

func TestReportFlagsOptions(t *testing.T) {
	cfg := mustDefaultConfig(t)

	tests := []struct {
		name     string
		args     []string
		wantTopN int
		wantUnk  bool
		wantSkip bool
	}{
		{"config defaults", nil, 10, false, false},
		{"explicit top", []string{"--top", "3"}, 3, false, false},
		{"top zero hides lists", []string{"--top", "0"}, -1, false, false},
		{"unknown and no cloud", []string{"--include-unknown", "--no-cloud"}, 10, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f reportFlags
			cmd := &cobra.Command{Use: "test"}
			f.register(cmd, true)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}

			opts := f.options(cmd, cfg)
			if opts.TopN != tt.wantTopN {
				t.Errorf("TopN = %d, want %d", opts.TopN, tt.wantTopN)
			}
			if opts.IncludeUnknown != tt.wantUnk {
				t.Errorf("IncludeUnknown = %t, want %t", opts.IncludeUnknown, tt.wantUnk)
			}
			if opts.SkipCloud != tt.wantSkip {
				t.Errorf("SkipCloud = %t, want %t", opts.SkipCloud, tt.wantSkip)
			}
			if opts.PreviewRows != 5 || !strings.EqualFold(opts.CloudOptions.Background, "white") {
				t.Errorf("preview/cloud options not taken from config: %+v", opts)
			}
		})
	}
}
