package wordcloud

import (
	"math"
	"sort"
	"unicode/utf8"
)

const (
	minFontSize = 10.0
	// charWidthRatio approximates glyph advance for a monospace font.
	charWidthRatio = 0.6
	lineSpacing    = 1.15
	padding        = 8.0
)

// palette is applied by rank so the largest words get the darkest colors.
var palette = []string{
	"#440154", "#482878", "#3E4A89", "#31688E", "#26828E",
	"#1F9E89", "#35B779", "#6DCD59", "#B4DE2C",
}

// PlacedWord is a word with its position and size on the canvas.
// X and Y are the text baseline's left edge.
type PlacedWord struct {
	Word     string  `json:"word"`
	Count    int     `json:"count"`
	FontSize float64 `json:"font_size"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Color    string  `json:"color"`
}

// Cloud is a laid-out word cloud.
type Cloud struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Background string       `json:"background"`
	Font       string       `json:"font"`
	Words      []PlacedWord `json:"words"`
}

// sortWordCounts orders by count descending, then word ascending.
func sortWordCounts(wc []WordCount) {
	sort.Slice(wc, func(i, j int) bool {
		if wc[i].Count != wc[j].Count {
			return wc[i].Count > wc[j].Count
		}
		return wc[i].Word < wc[j].Word
	})
}

// fontSize scales count linearly between minFontSize and maxSize.
func fontSize(count, minCount, maxCount int, maxSize float64) float64 {
	if maxCount == minCount {
		return maxSize
	}
	frac := float64(count-minCount) / float64(maxCount-minCount)
	return minFontSize + frac*(maxSize-minFontSize)
}

// textWidth estimates the rendered width of word at size.
func textWidth(word string, size float64) float64 {
	return float64(utf8.RuneCountInString(word)) * size * charWidthRatio
}

// layout packs words into centered rows, largest first.
// Words that do not fit in the remaining height are dropped.
func layout(words []WordCount, opts Options) []PlacedWord {
	if len(words) == 0 {
		return nil
	}

	width := float64(opts.Width) - 2*padding
	height := float64(opts.Height) - 2*padding
	maxSize := math.Max(minFontSize, math.Min(float64(opts.Height)/5, 96))
	maxCount := words[0].Count
	minCount := words[len(words)-1].Count

	type row struct {
		words  []PlacedWord
		width  float64
		height float64
	}

	var rows []row
	var cur row
	usedHeight := 0.0

	commit := func() bool {
		if len(cur.words) == 0 {
			return true
		}
		if usedHeight+cur.height > height {
			return false
		}
		usedHeight += cur.height
		rows = append(rows, cur)
		cur = row{}
		return true
	}

	for i, wc := range words {
		size := fontSize(wc.Count, minCount, maxCount, maxSize)
		w := textWidth(wc.Word, size)
		if w > width {
			// Shrink to fit the canvas width, but never below the minimum
			size = size * width / w
			if size < minFontSize {
				continue
			}
			w = textWidth(wc.Word, size)
		}

		gap := 0.0
		if len(cur.words) > 0 {
			gap = size * charWidthRatio
		}
		if cur.width+gap+w > width {
			if !commit() {
				break
			}
			gap = 0
		}

		cur.words = append(cur.words, PlacedWord{
			Word:     wc.Word,
			Count:    wc.Count,
			FontSize: math.Round(size*10) / 10,
			X:        cur.width + gap,
			Color:    palette[i%len(palette)],
		})
		cur.width += gap + w
		cur.height = math.Max(cur.height, size*lineSpacing)
	}
	commit()

	// Center rows horizontally and the block vertically
	var placed []PlacedWord
	y := padding + (height-usedHeight)/2
	for _, r := range rows {
		y += r.height
		offset := padding + (width-r.width)/2
		for _, pw := range r.words {
			pw.X = math.Round((pw.X+offset)*10) / 10
			pw.Y = math.Round((y-r.height*(lineSpacing-1))*10) / 10
			placed = append(placed, pw)
		}
	}
	return placed
}
