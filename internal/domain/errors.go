package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMalformedEntry  = errors.New("entry does not start with a year")
	ErrMalformedSrcset = errors.New("malformed srcset")
	ErrNoEntryForToday = errors.New("could not find feed entry for today")
	ErrNoSuchItem      = errors.New("no such entry in feed item")
	ErrAlreadyPosted   = errors.New("entry already posted today")
)

// MalformedEntryError carries the text of a list item without a leading year.
type MalformedEntryError struct {
	Text string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMalformedEntry, truncate(e.Text, 60))
}

func (e *MalformedEntryError) Unwrap() error { return ErrMalformedEntry }

// PostedRecord is the history row written after a successful publish.
type PostedRecord struct {
	Day      string
	Kind     string
	Item     int
	StatusID string
	URL      string
	PostedAt time.Time
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
