package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"TootBot/internal/domain"
	"TootBot/internal/ports"
)

// DefaultVisibility keeps bot posts off the public timelines.
const DefaultVisibility = "unlisted"

// TimestampLayout formats the status lines printed after each run.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// PublisherDeps wires the driven adapters used to publish a post.
type PublisherDeps struct {
	Poster     ports.Poster
	Downloader ports.MediaDownloader
	Repository ports.PostRepository
	Notifier   ports.Notifier
	Visibility string
	DryRun     bool
	Force      bool
	Out        io.Writer
	Logger     *slog.Logger
}

// Publisher hands posts to the social network, or prints them on dry runs.
type Publisher struct {
	poster     ports.Poster
	downloader ports.MediaDownloader
	repository ports.PostRepository
	notifier   ports.Notifier
	visibility string
	dryRun     bool
	force      bool
	out        io.Writer
	logger     *slog.Logger
}

// NewPublisher constructs the publishing component.
func NewPublisher(deps PublisherDeps) *Publisher {
	p := &Publisher{
		poster:     deps.Poster,
		downloader: deps.Downloader,
		repository: deps.Repository,
		notifier:   deps.Notifier,
		visibility: deps.Visibility,
		dryRun:     deps.DryRun,
		force:      deps.Force,
		out:        deps.Out,
		logger:     deps.Logger,
	}
	if p.visibility == "" {
		p.visibility = DefaultVisibility
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Publish uploads the post image (if any), posts the status and records it.
func (p *Publisher) Publish(ctx context.Context, post domain.Post, now time.Time) error {
	if p.dryRun {
		if post.Image != nil {
			p.logger.Info("dry run: image would be attached", "url", post.Image.URL, "alt", post.Image.AltText)
		}
		_, err := fmt.Fprintln(p.out, post.Text)
		return err
	}

	if p.poster == nil {
		return fmt.Errorf("poster is not configured")
	}

	day := now.Format(time.DateOnly)
	if post.Unique && !p.force && p.repository != nil {
		posted, err := p.repository.AlreadyPosted(ctx, day, post.Kind, post.Item)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if posted {
			return fmt.Errorf("%w: %s item %d", domain.ErrAlreadyPosted, post.Kind, post.Item)
		}
	}

	var mediaIDs []string
	if post.Image != nil && p.downloader != nil {
		data, err := p.downloader.Download(ctx, post.Image.URL)
		if err != nil {
			return fmt.Errorf("download image: %w", err)
		}
		mediaID, err := p.poster.PostMedia(ctx, data, post.Image.AltText)
		if err != nil {
			return fmt.Errorf("post media: %w", err)
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	record, err := p.poster.PostStatus(ctx, post.Text, p.visibility, mediaIDs)
	if err != nil {
		return fmt.Errorf("post status: %w", err)
	}
	p.logger.Info("status posted", "kind", post.Kind, "item", post.Item, "id", record.StatusID, "media", len(mediaIDs))

	if p.repository != nil {
		record.Day, record.Kind, record.Item = day, post.Kind, post.Item
		if err := p.repository.SavePosted(ctx, record); err != nil {
			return fmt.Errorf("persist post: %w", err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishPost(ctx, post.Text); err != nil {
			p.logger.Warn("mirror failed", "error", err)
		}
	}

	_, err = fmt.Fprintf(p.out, "%s: Successfully tooted!\n", now.Format(TimestampLayout))
	return err
}
