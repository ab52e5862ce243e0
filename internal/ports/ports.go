package ports

import (
	"context"
	"time"

	"TootBot/internal/domain"
)

// FeedSource pulls the current "on this day" feed items.
type FeedSource interface {
	Fetch(ctx context.Context) ([]domain.FeedItem, error)
}

// FeedCache stores the raw feed item of the day between runs.
// Read returns (nil, nil) when nothing is cached.
type FeedCache interface {
	Read() ([]byte, error)
	Write(blob []byte) error
}

// Ephemeris resolves distances between celestial bodies in astronomical units.
type Ephemeris interface {
	Distance(ctx context.Context, from, to domain.Body, at time.Time) (float64, error)
}

// Poster publishes statuses and media to the social network.
type Poster interface {
	PostStatus(ctx context.Context, text, visibility string, mediaIDs []string) (domain.PostedRecord, error)
	PostMedia(ctx context.Context, file []byte, description string) (string, error)
}

// MediaDownloader fetches the bytes of a remote image.
type MediaDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// PostRepository keeps a history of published posts to avoid duplicates.
type PostRepository interface {
	AlreadyPosted(ctx context.Context, day, kind string, item int) (bool, error)
	SavePosted(ctx context.Context, record domain.PostedRecord) error
}

// Notifier mirrors published posts to secondary channels (Telegram, etc.).
type Notifier interface {
	PublishPost(ctx context.Context, text string) error
}

// Scheduler controls when jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
