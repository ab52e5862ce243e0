package domain

import "time"

// FeedItemTimeLayout is the format of FeedItem.Updated.
const FeedItemTimeLayout = "2006-01-02T15:04:05Z"

// FeedItem is one dated entry of the "on this day" feed. It is the unit
// persisted by the daily cache, so its JSON shape is part of the cache format.
type FeedItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Updated string `json:"updated"`
	Summary string `json:"summary"`
}

// Day returns the calendar date the item is about.
func (f FeedItem) Day() (time.Time, error) {
	t, err := time.Parse(FeedItemTimeLayout, f.Updated)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// IsFor reports whether the item is about the calendar date of day.
func (f FeedItem) IsFor(day time.Time) bool {
	d, err := f.Day()
	if err != nil {
		return false
	}
	y, m, dd := day.Date()
	return d.Year() == y && d.Month() == m && d.Day() == dd
}

// Image is the media attached to an entry.
type Image struct {
	URL     string
	AltText string
}

// Entry is one historical event parsed from a feed item's list.
type Entry struct {
	Text     string
	Year     int
	Links    []string
	YearLink string
	Image    *Image
}

// Post is a ready-to-publish status.
type Post struct {
	Kind  string
	Item  int
	Text  string
	Image *Image
	// Unique posts are published at most once per day.
	Unique bool
}
