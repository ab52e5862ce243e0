package onthisday

import (
	"strings"
	"testing"
	"time"

	"TootBot/internal/domain"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	entry := domain.Entry{
		Year:  today.Year() - 5,
		Text:  "2021: test entry",
		Links: []string{"https://example.org/x", "https://example.org/y"},
	}

	got := Format(entry, today)
	want := "Heute vor 5 Jahren:\n\n2021: test entry\n\nhttps://example.org/x"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormatWithoutLinks(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	got := Format(domain.Entry{Year: 1926, Text: "1926: nichts verlinkt"}, today)
	if !strings.HasPrefix(got, "Heute vor 100 Jahren:\n\n") {
		t.Fatalf("unexpected header: %q", got)
	}
	if strings.Contains(got, "http") {
		t.Fatalf("expected no link, got %q", got)
	}
}
