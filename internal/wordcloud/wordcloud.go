// Package wordcloud turns a body of text into a word-cloud image.
//
// Generation can be refused (for example on an empty corpus). Refusal is
// a normal Result, not an error, so callers decide how to show it.
package wordcloud

// Generator produces a word cloud from raw text.
type Generator interface {
	Generate(text string, opts Options) Result
}

// Options are the rendering options a generator recognizes.
type Options struct {
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
	Background string `yaml:"background" json:"background"`
	Font       string `yaml:"font" json:"font"`
	MaxWords   int    `yaml:"max_words" json:"max_words"`
}

// DefaultOptions returns the dashboard's default rendering options.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     400,
		Background: "white",
		Font:       "DejaVu Sans Mono",
		MaxWords:   200,
	}
}

// withDefaults fills zero-valued fields from DefaultOptions.
// Negative sizes are kept so the generator can refuse them.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width == 0 {
		o.Width = d.Width
	}
	if o.Height == 0 {
		o.Height = d.Height
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.Font == "" {
		o.Font = d.Font
	}
	if o.MaxWords <= 0 {
		o.MaxWords = d.MaxWords
	}
	return o
}

// Reasons a generator may refuse.
const (
	ReasonEmptyText   = "no words in text"
	ReasonBadSize     = "width and height must be positive"
	ReasonNothingFits = "no word fits in the canvas"
)

// Result is either a rendered Cloud or a refusal.
type Result struct {
	cloud  *Cloud
	reason string
}

// Image wraps a rendered cloud.
func Image(c *Cloud) Result {
	return Result{cloud: c}
}

// Refused returns a refusal with the given reason.
func Refused(reason string) Result {
	return Result{reason: reason}
}

// Refused reports whether the generator declined to produce an image.
func (r Result) Refused() bool {
	return r.cloud == nil
}

// Cloud returns the rendered cloud, or false on refusal.
func (r Result) Cloud() (*Cloud, bool) {
	return r.cloud, r.cloud != nil
}

// Reason returns why generation was refused ("" for an image).
func (r Result) Reason() string {
	return r.reason
}
