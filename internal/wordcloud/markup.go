package wordcloud

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes tags such as <jats:p> and decodes entities.
// Some CORD-19 abstracts carry JATS or HTML markup that would otherwise
// show up as words. Text without '<' or '&' is returned unchanged.
func StripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; keep what was read
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Tags separate words
			sb.WriteByte(' ')
		}
	}
}
