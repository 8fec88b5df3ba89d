package dataset

import (
	"errors"
	"fmt"
)

// Reasons a load can fail.
var (
	ErrFileNotFound  = errors.New("data file not found")
	ErrUnreadable    = errors.New("data file unreadable")
	ErrNoHeader      = errors.New("data file has no header row")
	ErrMissingColumn = errors.New("required column missing")
)

// LoadError reports a failure to load the dataset file.
// Row-level problems (bad dates, empty cells) never produce a LoadError.
type LoadError struct {
	Path   string
	Column string // Set when Reason is ErrMissingColumn
	Reason error
	Err    error // Underlying I/O or parse error, if any
}

func (e *LoadError) Error() string {
	switch {
	case e.Column != "":
		return fmt.Sprintf("loading %s: %v: %q", e.Path, e.Reason, e.Column)
	case e.Err != nil:
		return fmt.Sprintf("loading %s: %v: %v", e.Path, e.Reason, e.Err)
	default:
		return fmt.Sprintf("loading %s: %v", e.Path, e.Reason)
	}
}

// Unwrap exposes both the reason sentinel and the underlying error.
func (e *LoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Reason, e.Err}
	}
	return []error{e.Reason}
}

// IsLoadError returns true if err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
