package dataset

import (
	"strings"
	"time"

	"github.com/matsen/cordx/internal/paper"
)

// dateLayouts are tried in order when parsing publish_time.
// CORD-19 mostly uses 2006-01-02, with a tail of year-only and
// month-name forms.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
	"Jan 2 2006",
	"2006 Jan 2",
	"2006 Jan",
}

// ParseDate parses a raw publish_time cell.
// Values that match no known layout are Absent; ParseDate never fails.
// A timestamp keeps its own offset, so its year is the local calendar year.
func ParseDate(raw string) paper.Optional[time.Time] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return paper.None[time.Time]()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return paper.Some(t)
		}
	}
	return paper.None[time.Time]()
}
