package viz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matsen/cordx/internal/aggregate"
	"github.com/matsen/cordx/internal/paper"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("dashboard").Parse(htmlTemplate))
	template.Must(compiledTemplate.New("chart").Parse(chartTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title    string
	Subtitle string
	// FormAction, when set, renders a year-range form that submits there.
	FormAction string
	// YearLow and YearHigh bound the form inputs (the dataset's year range).
	YearLow, YearHigh int
	// TopN is the length of the top lists; 0 means the default and a
	// negative value means the lists are hidden.
	TopN int
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Title:    "CORD-19 Data Explorer",
		Subtitle: "Simple interactive exploration of COVID-19 research papers",
		TopN:     aggregate.DefaultTopN,
	}
}

// PreviewRow is a preview-table row with absent values shown as blanks.
type PreviewRow struct {
	Title       string
	Journal     string
	Source      string
	PublishTime string
	Year        string
	Words       int
}

// templateData holds data for the HTML template.
type templateData struct {
	Opts        HTMLOptions
	Report      *aggregate.Report
	Preview     []PreviewRow
	Charts      []*BarChart
	CloudSVG    template.HTML
	CloudReason string
	TopParam    int // Value for the form's top field; 0 keeps the lists hidden
}

// GenerateHTML generates a self-contained HTML page for the report.
func GenerateHTML(report *aggregate.Report, opts HTMLOptions) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report cannot be nil")
	}
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}
	if opts.TopN == 0 {
		opts.TopN = aggregate.DefaultTopN
	}

	data := templateData{
		Opts:    opts,
		Report:  report,
		Preview: previewRows(report.Preview),
		Charts: []*BarChart{
			YearChart(report.YearCounts),
			JournalChart(report.TopJournals),
			SourceChart(report.TopSources),
		},
		TopParam: max(opts.TopN, 0),
	}
	top := "Top"
	if opts.TopN > 0 {
		top = fmt.Sprintf("Top %d", opts.TopN)
	}
	data.Charts[1].Title = top + " Journals Publishing COVID-19 Research"
	data.Charts[2].Title = top + " Sources"

	if cloud := report.WordCloud.Cloud; cloud != nil {
		svg, err := cloud.SVG()
		if err != nil {
			return "", err
		}
		// Generated by our own escaping template
		data.CloudSVG = template.HTML(svg)
	} else {
		data.CloudReason = report.WordCloud.Reason
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering dashboard: %w", err)
	}
	return buf.String(), nil
}

// previewRows converts papers to display rows.
func previewRows(papers []paper.Paper) []PreviewRow {
	rows := make([]PreviewRow, len(papers))
	for i, p := range papers {
		row := PreviewRow{
			Title:   p.Title.OrElse(""),
			Journal: p.Journal.OrElse(""),
			Source:  p.Source.OrElse(""),
			Words:   p.AbstractWordCount,
		}
		if t, ok := p.PublishTime.Get(); ok {
			row.PublishTime = t.Format("2006-01-02")
		}
		if y, ok := p.Year.Get(); ok {
			row.Year = fmt.Sprint(y)
		}
		rows[i] = row
	}
	return rows
}

const chartTemplate = `<figure class="chart">
  <figcaption>{{.Title}}</figcaption>
  {{- if .IsEmpty}}
  <p class="empty">No data for this range.</p>
  {{- else}}
  <svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
    {{- range .Ticks}}
    {{- if $.Horizontal}}
    <line x1="{{.Pos}}" x2="{{.Pos}}" y1="16" y2="{{.LabelY}}" class="grid"/>
    <text x="{{.LabelX}}" y="{{.LabelY}}" text-anchor="middle" class="tick">{{.Value}}</text>
    {{- else}}
    <line x1="48" x2="696" y1="{{.Pos}}" y2="{{.Pos}}" class="grid"/>
    <text x="{{.LabelX}}" y="{{.LabelY}}" text-anchor="end" class="tick">{{.Value}}</text>
    {{- end}}
    {{- end}}
    {{- range .Bars}}
    <rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="{{.Fill}}"><title>{{.Label}}: {{.Value}}</title></rect>
    {{- if $.Horizontal}}
    <text x="{{.LabelX}}" y="{{.LabelY}}" text-anchor="end" class="label">{{.Label}}</text>
    {{- else}}
    <text x="{{.LabelX}}" y="{{.LabelY}}" text-anchor="middle" class="label">{{.Label}}</text>
    {{- end}}
    {{- end}}
  </svg>
  {{- if .XLabel}}<div class="axis">{{.XLabel}}{{if .YLabel}} / {{.YLabel}}{{end}}</div>{{end}}
  {{- end}}
</figure>`

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Opts.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: #f5f5f5;
      color: #333;
    }
    main {
      max-width: 960px;
      margin: 0 auto;
      padding: 1em 2em 3em;
      background: white;
    }
    h1 { margin-bottom: 0.2em; }
    h2 { margin-top: 1.6em; border-bottom: 1px solid #eee; padding-bottom: 0.2em; }
    form { margin: 1em 0; padding: 0.8em; background: #fafafa; border: 1px solid #eee; }
    form input { width: 6em; }
    table { border-collapse: collapse; width: 100%; font-size: 13px; }
    th, td { border-bottom: 1px solid #eee; padding: 4px 8px; text-align: left; }
    .summary span { margin-right: 1.5em; }
    .chart figcaption { font-weight: bold; margin-bottom: 0.4em; }
    .chart .grid { stroke: #e5e5e5; }
    .chart .tick, .chart .label { font-size: 11px; fill: #555; }
    .axis { font-size: 12px; color: #777; }
    .empty, .warning { color: #8a6d3b; background: #fcf8e3; padding: 0.6em; }
    footer { margin-top: 3em; color: #999; font-size: 12px; border-top: 1px solid #eee; padding-top: 1em; }
  </style>
</head>
<body>
<main>
  <h1>{{.Opts.Title}}</h1>
  {{- if .Opts.Subtitle}}
  <p>{{.Opts.Subtitle}}</p>
  {{- end}}

  {{- if .Opts.FormAction}}
  <form method="get" action="{{.Opts.FormAction}}">
    <strong>Filters</strong>
    <label>From <input type="number" name="from" value="{{.Report.YearMin}}" min="{{.Opts.YearLow}}" max="{{.Opts.YearHigh}}"></label>
    <label>To <input type="number" name="to" value="{{.Report.YearMax}}" min="{{.Opts.YearLow}}" max="{{.Opts.YearHigh}}"></label>
    <input type="hidden" name="top" value="{{.TopParam}}">
    <button type="submit">Apply</button>
  </form>
  {{- end}}

  <p class="summary">
    <span>Years {{.Report.YearMin}}&ndash;{{.Report.YearMax}}</span>
    <span>{{.Report.Summary.Papers}} of {{.Report.Summary.DatasetPapers}} papers</span>
    <span>{{.Report.Summary.WithAbstract}} with abstracts</span>
    <span>{{.Report.Summary.DistinctJournals}} journals</span>
  </p>

  <h2>Dataset Preview</h2>
  {{- if .Preview}}
  <table>
    <thead><tr><th>Title</th><th>Journal</th><th>Source</th><th>Published</th><th>Year</th><th>Abstract words</th></tr></thead>
    <tbody>
    {{- range .Preview}}
      <tr><td>{{.Title}}</td><td>{{.Journal}}</td><td>{{.Source}}</td><td>{{.PublishTime}}</td><td>{{.Year}}</td><td>{{.Words}}</td></tr>
    {{- end}}
    </tbody>
  </table>
  {{- else}}
  <p class="empty">No papers published in this range.</p>
  {{- end}}

  <h2>Publications Over Time</h2>
  {{template "chart" index .Charts 0}}

  <h2>Top Journals</h2>
  {{template "chart" index .Charts 1}}

  <h2>Distribution of Papers by Source</h2>
  {{template "chart" index .Charts 2}}

  <h2>Word Cloud of Paper Abstracts</h2>
  {{- if .CloudSVG}}
  <div class="cloud">{{.CloudSVG}}</div>
  {{- else if eq .Report.WordCloud.Status "skipped"}}
  <p class="empty">Word cloud disabled.</p>
  {{- else}}
  <p class="warning">Nothing to display for this range{{if .CloudReason}} ({{.CloudReason}}){{end}}.</p>
  {{- end}}

  <footer>Generated by cordx</footer>
</main>
</body>
</html>`
