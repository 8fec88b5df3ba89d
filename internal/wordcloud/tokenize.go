package wordcloud

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultStopwords are common English words plus boilerplate that
// dominates biomedical abstracts without saying anything.
var DefaultStopwords = []string{
	"a", "about", "after", "all", "also", "an", "and", "any", "are", "as",
	"at", "be", "been", "being", "between", "both", "but", "by", "can",
	"could", "did", "do", "does", "during", "each", "et", "for", "from",
	"had", "has", "have", "however", "if", "in", "into", "is", "it", "its",
	"may", "more", "most", "no", "not", "of", "on", "one", "or", "other",
	"our", "over", "such", "than", "that", "the", "their", "them", "then",
	"there", "these", "they", "this", "those", "through", "to", "two",
	"under", "up", "using", "via", "was", "we", "were", "what", "when",
	"where", "which", "while", "who", "will", "with", "within", "would",
	"abstract", "background", "conclusion", "conclusions", "methods",
	"results", "study", "studies", "used", "use", "al",
}

// Tokenizer splits text into lowercase word tokens and drops stopwords.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the given stopword list.
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize returns the surviving tokens of text in order.
// Markup is stripped and the text NFKC-normalized first, so ligatures
// and full-width forms fold onto their plain spellings.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.keep(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range norm.NFKC.String(StripMarkup(text)) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// keep cleans a raw token and returns "" if it should be dropped.
func (t *Tokenizer) keep(token string) string {
	word := strings.Trim(token, "-'")
	word = strings.TrimSuffix(word, "'s")
	if len([]rune(word)) <= 1 {
		return ""
	}
	if isNumericOnly(word) {
		return ""
	}
	if _, stop := t.stopwords[word]; stop {
		return ""
	}
	return word
}

// isNumericOnly reports whether s has no letters (e.g. "2020", "3-4").
func isNumericOnly(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// WordCount is a word and how often it occurred.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequencies counts tokens, sorted by count descending then word ascending.
func Frequencies(tokens []string) []WordCount {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	out := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, WordCount{Word: w, Count: c})
	}
	sortWordCounts(out)
	return out
}
