package wordcloud

// Builtin is the default Generator: frequency counting plus a
// deterministic row layout rendered as SVG.
type Builtin struct {
	tokenizer *Tokenizer
}

// NewBuiltin returns a generator using the given stopwords.
// A nil list means DefaultStopwords.
func NewBuiltin(stopwords []string) *Builtin {
	if stopwords == nil {
		stopwords = DefaultStopwords
	}
	return &Builtin{tokenizer: NewTokenizer(stopwords)}
}

// Generate implements Generator.
func (b *Builtin) Generate(text string, opts Options) Result {
	opts = opts.withDefaults()
	if opts.Width <= 0 || opts.Height <= 0 {
		return Refused(ReasonBadSize)
	}

	freqs := Frequencies(b.tokenizer.Tokenize(text))
	if len(freqs) == 0 {
		return Refused(ReasonEmptyText)
	}
	if len(freqs) > opts.MaxWords {
		freqs = freqs[:opts.MaxWords]
	}

	words := layout(freqs, opts)
	if len(words) == 0 {
		return Refused(ReasonNothingFits)
	}

	return Image(&Cloud{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.Background,
		Font:       opts.Font,
		Words:      words,
	})
}

// Generate runs the default builtin generator.
func Generate(text string, opts Options) Result {
	return NewBuiltin(nil).Generate(text, opts)
}
