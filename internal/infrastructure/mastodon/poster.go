package mastodon

import (
	"bytes"
	"context"
	"fmt"
	"time"

	gomastodon "github.com/mattn/go-mastodon"

	"TootBot/internal/domain"
	"TootBot/internal/ports"
)

// DefaultServer is the instance the bot accounts live on.
const DefaultServer = "https://chaos.social"

// Poster publishes toots through the Mastodon REST API.
type Poster struct {
	client *gomastodon.Client
}

var _ ports.Poster = (*Poster)(nil)

// NewPoster authenticates against server with an access token.
func NewPoster(server, accessToken string) *Poster {
	if server == "" {
		server = DefaultServer
	}
	client := gomastodon.NewClient(&gomastodon.Config{
		Server:      server,
		AccessToken: accessToken,
	})
	client.Timeout = 30 * time.Second
	return &Poster{client: client}
}

// PostStatus publishes text with the given visibility and attachments.
func (p *Poster) PostStatus(ctx context.Context, text, visibility string, mediaIDs []string) (domain.PostedRecord, error) {
	if p.client.Config.AccessToken == "" {
		return domain.PostedRecord{}, fmt.Errorf("mastodon poster misconfigured: missing access token")
	}

	toot := &gomastodon.Toot{
		Status:     text,
		Visibility: visibility,
	}
	for _, id := range mediaIDs {
		toot.MediaIDs = append(toot.MediaIDs, gomastodon.ID(id))
	}

	status, err := p.client.PostStatus(ctx, toot)
	if err != nil {
		return domain.PostedRecord{}, fmt.Errorf("post status: %w", err)
	}

	postedAt := status.CreatedAt
	if postedAt.IsZero() {
		postedAt = time.Now()
	}
	return domain.PostedRecord{
		StatusID: string(status.ID),
		URL:      status.URL,
		PostedAt: postedAt,
	}, nil
}

// PostMedia uploads an image with its description and returns the media ID.
func (p *Poster) PostMedia(ctx context.Context, file []byte, description string) (string, error) {
	attachment, err := p.client.UploadMediaFromMedia(ctx, &gomastodon.Media{
		File:        bytes.NewReader(file),
		Description: description,
	})
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return string(attachment.ID), nil
}
