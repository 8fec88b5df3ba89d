package wordcloud

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledSVG is parsed at init time to fail fast on template errors.
var compiledSVG = template.Must(template.New("cloud").Funcs(template.FuncMap{
	"num": func(f float64) string { return fmt.Sprintf("%.1f", f) },
}).Parse(svgTemplate))

// SVG renders the cloud as a standalone SVG document.
func (c *Cloud) SVG() (string, error) {
	var buf bytes.Buffer
	if err := compiledSVG.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("rendering word cloud SVG: %w", err)
	}
	return buf.String(), nil
}

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="{{.Font}}">
  <rect width="100%" height="100%" fill="{{.Background}}"/>
{{- range .Words}}
  <text x="{{num .X}}" y="{{num .Y}}" font-size="{{num .FontSize}}" fill="{{.Color}}"><title>{{.Word}}: {{.Count}}</title>{{.Word}}</text>
{{- end}}
</svg>
`
