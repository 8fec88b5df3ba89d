package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/dataset"
	"github.com/matsen/cordx/internal/paper"
)

func testReport(t *testing.T, yearMin, yearMax int) *aggregate.Report {
	t.Helper()
	day := func(y int) paper.Optional[time.Time] {
		return paper.Some(time.Date(y, 3, 1, 0, 0, 0, 0, time.UTC))
	}
	ds := dataset.FromPapers([]paper.Paper{
		{Title: paper.Some("Spike <b>structure</b>"), Journal: paper.Some("Nature"), Source: paper.Some("PMC"),
			Abstract: paper.Some("spike protein structure"), PublishTime: day(2020)},
		{Title: paper.Some("Trial"), Journal: paper.Some("Lancet"), Source: paper.Some("WHO"),
			Abstract: paper.Some("vaccine efficacy trial"), PublishTime: day(2021)},
		{Title: paper.Some("No abstract"), PublishTime: day(2021)},
	})
	report, err := aggregate.Aggregate(ds, yearMin, yearMax, aggregate.Options{})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	return report
}

func TestGenerateHTML(t *testing.T) {
	report := testReport(t, 2020, 2021)
	opts := DefaultOptions()
	opts.FormAction = "/"
	opts.YearLow, opts.YearHigh = 2020, 2021

	html, err := GenerateHTML(report, opts)
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}

	for _, want := range []string{
		"<title>CORD-19 Data Explorer</title>",
		"Dataset Preview",
		"Publications Over Time",
		"Top 10 Journals Publishing COVID-19 Research",
		"Top 10 Sources",
		`<form method="get" action="/">`,
		`name="from" value="2020"`,
		">vaccine</text>",
		"Nature: 1",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}

	if strings.Contains(html, "<b>structure</b>") {
		t.Error("paper titles must be escaped")
	}
}

func TestGenerateHTML_TopField(t *testing.T) {
	tests := []struct {
		name      string
		topN      int
		wantField string
		wantTitle string
	}{
		{"default", 0, `name="top" value="10"`, "Top 10 Journals Publishing"},
		{"explicit", 3, `name="top" value="3"`, "Top 3 Sources"},
		{"hidden", -1, `name="top" value="0"`, ">Top Journals Publishing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.FormAction = "/"
			opts.TopN = tt.topN

			html, err := GenerateHTML(testReport(t, 2020, 2021), opts)
			if err != nil {
				t.Fatalf("GenerateHTML() error = %v", err)
			}
			if !strings.Contains(html, tt.wantField) {
				t.Errorf("HTML missing %q", tt.wantField)
			}
			if !strings.Contains(html, tt.wantTitle) {
				t.Errorf("HTML missing %q", tt.wantTitle)
			}
			if tt.topN < 0 && strings.Contains(html, "Top 10") {
				t.Error("hidden lists should not be titled Top 10")
			}
		})
	}
}

func TestGenerateHTML_EmptyRange(t *testing.T) {
	report := testReport(t, 1990, 1991)

	html, err := GenerateHTML(report, HTMLOptions{})
	if err != nil {
		t.Fatalf("GenerateHTML() error = %v", err)
	}
	for _, want := range []string{
		"No papers published in this range.",
		"No data for this range.",
		"Nothing to display for this range",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(html, "<form") {
		t.Error("form should be omitted without FormAction")
	}
}

func TestGenerateHTML_Nil(t *testing.T) {
	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("GenerateHTML(nil) should fail")
	}
}

func TestYearChart(t *testing.T) {
	c := YearChart([]aggregate.YearCount{{Year: 2019, Count: 2}, {Year: 2020, Count: 10}, {Year: 2021, Count: 5}})

	if len(c.Bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(c.Bars))
	}
	if c.Bars[0].Label != "2019" {
		t.Errorf("first label = %q, want 2019", c.Bars[0].Label)
	}
	// The tallest bar has the smallest Y (SVG y grows downward)
	if !(c.Bars[1].Y < c.Bars[2].Y && c.Bars[2].Y < c.Bars[0].Y) {
		t.Errorf("bar tops not ordered by value: %+v", c.Bars)
	}
	for i := 1; i < len(c.Bars); i++ {
		if c.Bars[i].X <= c.Bars[i-1].X {
			t.Errorf("bars not left to right: %+v", c.Bars)
		}
	}
	if c.Ticks[len(c.Ticks)-1].Value < 10 {
		t.Errorf("top tick %d below max value", c.Ticks[len(c.Ticks)-1].Value)
	}

	if !YearChart(nil).IsEmpty() {
		t.Error("YearChart(nil) should be empty")
	}
}

func TestJournalChart(t *testing.T) {
	c := JournalChart([]aggregate.CategoryCount{{Name: "Lancet", Count: 4}, {Name: "Nature", Count: 2}})
	if !c.Horizontal {
		t.Error("journal chart should be horizontal")
	}
	if c.Bars[0].W <= c.Bars[1].W {
		t.Errorf("larger count should have a wider bar: %+v", c.Bars)
	}
	if c.Bars[0].Y >= c.Bars[1].Y {
		t.Errorf("first category should be on top: %+v", c.Bars)
	}
}

func TestNiceMax(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 5}, {3, 5}, {7, 10}, {23, 25}, {48, 50}, {101, 250},
	}
	for _, tt := range tests {
		if got := niceMax(tt.in); got != tt.want {
			t.Errorf("niceMax(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got := niceMax(tt.in); got < tt.in {
			t.Errorf("niceMax(%d) = %d is below input", tt.in, got)
		}
	}
}
