// Package viz renders an aggregate.Report as a self-contained HTML dashboard.
package viz

// BarChart is a bar chart with geometry already computed, ready to be
// emitted as SVG.
type BarChart struct {
	Title      string
	XLabel     string
	YLabel     string
	Width      int
	Height     int
	Horizontal bool
	Bars       []Bar
	Ticks      []Tick
}

// Bar is one rectangle of a chart with its label position.
type Bar struct {
	Label  string
	Value  int
	X, Y   float64
	W, H   float64
	Fill   string
	LabelX float64
	LabelY float64
}

// Tick is a value-axis gridline.
type Tick struct {
	Value  int
	Pos    float64 // Offset along the value axis
	LabelX float64
	LabelY float64
}

// IsEmpty returns true if the chart has no bars.
func (c *BarChart) IsEmpty() bool {
	return len(c.Bars) == 0
}
