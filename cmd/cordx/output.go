package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/cordx/internal/paper"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 20 // Default limit for search and export listings

	SearchTitleMaxLen  = 70 // Used in search result summaries
	PreviewTitleMaxLen = 50 // Used in the report preview table
	TextWrapWidth      = 68 // Abstract snippets in search output
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that write a file.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		switch {
		case line.Len() == 0:
			line.WriteString(word)
		case line.Len()+1+len(word) <= width:
			line.WriteString(" ")
			line.WriteString(word)
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n"+indent)
}

// orDash renders an absent value as "-".
func orDash(o paper.Optional[string]) string {
	return o.OrElse("-")
}

// yearString renders a paper's year, or "-" when absent.
func yearString(p paper.Paper) string {
	if y, ok := p.Year.Get(); ok {
		return fmt.Sprintf("%d", y)
	}
	return "-"
}

// printPaperSummary prints one paper in the search/list format.
func printPaperSummary(num int, p paper.Paper, withAbstract bool) {
	fmt.Printf("[%d] %s\n", num, truncateString(p.Title.OrElse("(untitled)"), SearchTitleMaxLen))
	fmt.Printf("    %s, %s (%s)\n", orDash(p.Journal), orDash(p.Source), yearString(p))
	if withAbstract {
		if a, ok := p.Abstract.Get(); ok {
			fmt.Printf("    %s\n", wrapText(truncateString(a, 3*TextWrapWidth), TextWrapWidth, "    "))
		}
	}
	fmt.Println()
}
