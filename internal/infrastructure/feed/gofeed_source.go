package feed

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"TootBot/internal/domain"
	"TootBot/internal/ports"
)

// DefaultURL is the German Wikipedia "on this day" Atom feed.
const DefaultURL = "https://de.wikipedia.org/w/api.php?action=featuredfeed&feed=onthisday&feedformat=atom"

// Source reads feed items with gofeed.
type Source struct {
	url       string
	userAgent string
	client    *http.Client
	parser    *gofeed.Parser
	logger    *slog.Logger
}

var _ ports.FeedSource = (*Source)(nil)

// NewSource wires an HTTP client; a nil client gets a 20s timeout.
func NewSource(url, userAgent string, client *http.Client, logger *slog.Logger) *Source {
	if url == "" {
		url = DefaultURL
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		url:       url,
		userAgent: userAgent,
		client:    client,
		parser:    gofeed.NewParser(),
		logger:    logger,
	}
}

// Fetch downloads the feed and converts its items.
func (s *Source) Fetch(ctx context.Context) ([]domain.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	parsed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.FeedItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, convert(item))
	}
	s.logger.Debug("feed fetched", "url", s.url, "items", len(items))
	return items, nil
}

func convert(item *gofeed.Item) domain.FeedItem {
	updated := item.Updated
	switch {
	case item.UpdatedParsed != nil:
		updated = item.UpdatedParsed.UTC().Format(domain.FeedItemTimeLayout)
	case item.PublishedParsed != nil:
		updated = item.PublishedParsed.UTC().Format(domain.FeedItemTimeLayout)
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	return domain.FeedItem{
		Title:   item.Title,
		Link:    item.Link,
		Updated: updated,
		Summary: summary,
	}
}
