package viz

import (
	"math"
	"strconv"

	"github.com/matsen/cordx/internal/aggregate"
)

// Chart canvas sizes and margins, in SVG user units.
const (
	chartWidth  = 720
	chartHeight = 320
	marginTop   = 16
	marginRight = 24
	marginLeft  = 48
	marginBase  = 40
	// labelColumn is the space for category names in horizontal charts.
	labelColumn = 220
	barGapRatio = 0.2
	tickCount   = 5
)

const (
	yearColor   = "#87CEEB" // skyblue
	sourceColor = "#FFA500" // orange
)

// viridis is sampled for the journal chart, darkest first.
var viridis = []string{
	"#440154", "#482475", "#414487", "#355F8D", "#2A788E",
	"#21918C", "#22A884", "#44BF70", "#7AD151", "#BDDF26",
}

// YearChart builds a vertical bar chart of publications per year.
func YearChart(counts []aggregate.YearCount) *BarChart {
	labels := make([]string, len(counts))
	values := make([]int, len(counts))
	for i, yc := range counts {
		labels[i] = strconv.Itoa(yc.Year)
		values[i] = yc.Count
	}
	c := verticalChart(labels, values, func(int) string { return yearColor })
	c.Title = "Number of Publications by Year"
	c.XLabel = "Year"
	c.YLabel = "Count"
	return c
}

// JournalChart builds a horizontal bar chart of the top journals.
func JournalChart(counts []aggregate.CategoryCount) *BarChart {
	labels, values := splitCategories(counts)
	c := horizontalChart(labels, values, func(i int) string {
		return viridis[i*len(viridis)/max(len(counts), 1)]
	})
	c.Title = "Top Journals"
	c.XLabel = "Paper Count"
	return c
}

// SourceChart builds a vertical bar chart of the top sources.
func SourceChart(counts []aggregate.CategoryCount) *BarChart {
	labels, values := splitCategories(counts)
	c := verticalChart(labels, values, func(int) string { return sourceColor })
	c.Title = "Top Sources"
	c.XLabel = "Source"
	c.YLabel = "Count"
	return c
}

func splitCategories(counts []aggregate.CategoryCount) ([]string, []int) {
	labels := make([]string, len(counts))
	values := make([]int, len(counts))
	for i, cc := range counts {
		labels[i] = cc.Name
		values[i] = cc.Count
	}
	return labels, values
}

// niceMax rounds v up to a value that divides evenly into tickCount steps.
func niceMax(v int) int {
	if v <= tickCount {
		return tickCount
	}
	step := int(math.Ceil(float64(v) / tickCount))
	mag := int(math.Pow(10, math.Floor(math.Log10(float64(step)))))
	for _, m := range []int{1, 2, 5, 10} {
		if step <= m*mag {
			step = m * mag
			break
		}
	}
	return step * tickCount
}

func maxValue(values []int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// verticalChart lays out one column per value, left to right.
func verticalChart(labels []string, values []int, fill func(int) string) *BarChart {
	c := &BarChart{Width: chartWidth, Height: chartHeight}
	if len(values) == 0 {
		return c
	}

	plotW := float64(chartWidth - marginLeft - marginRight)
	plotH := float64(chartHeight - marginTop - marginBase)
	top := niceMax(maxValue(values))
	slot := plotW / float64(len(values))
	barW := slot * (1 - barGapRatio)
	base := float64(marginTop) + plotH

	for i, v := range values {
		h := plotH * float64(v) / float64(top)
		x := float64(marginLeft) + float64(i)*slot + (slot-barW)/2
		c.Bars = append(c.Bars, Bar{
			Label:  labels[i],
			Value:  v,
			X:      round1(x),
			Y:      round1(base - h),
			W:      round1(barW),
			H:      round1(h),
			Fill:   fill(i),
			LabelX: round1(x + barW/2),
			LabelY: round1(base + 16),
		})
	}

	for k := 0; k <= tickCount; k++ {
		val := top * k / tickCount
		y := base - plotH*float64(val)/float64(top)
		c.Ticks = append(c.Ticks, Tick{
			Value:  val,
			Pos:    round1(y),
			LabelX: float64(marginLeft - 6),
			LabelY: round1(y + 4),
		})
	}
	return c
}

// horizontalChart lays out one row per value, top to bottom.
func horizontalChart(labels []string, values []int, fill func(int) string) *BarChart {
	c := &BarChart{Width: chartWidth, Height: chartHeight, Horizontal: true}
	if len(values) == 0 {
		return c
	}

	plotW := float64(chartWidth - labelColumn - marginRight)
	plotH := float64(chartHeight - marginTop - marginBase)
	top := niceMax(maxValue(values))
	slot := plotH / float64(len(values))
	barH := slot * (1 - barGapRatio)
	left := float64(labelColumn)

	for i, v := range values {
		w := plotW * float64(v) / float64(top)
		y := float64(marginTop) + float64(i)*slot + (slot-barH)/2
		c.Bars = append(c.Bars, Bar{
			Label:  labels[i],
			Value:  v,
			X:      left,
			Y:      round1(y),
			W:      round1(w),
			H:      round1(barH),
			Fill:   fill(i),
			LabelX: left - 6,
			LabelY: round1(y + barH/2 + 4),
		})
	}

	base := float64(marginTop) + plotH
	for k := 0; k <= tickCount; k++ {
		val := top * k / tickCount
		x := left + plotW*float64(val)/float64(top)
		c.Ticks = append(c.Ticks, Tick{
			Value:  val,
			Pos:    round1(x),
			LabelX: round1(x),
			LabelY: round1(base + 16),
		})
	}
	return c
}
