package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"TootBot/internal/composer"
	"TootBot/internal/domain"
	"TootBot/internal/onthisday"
	"TootBot/internal/ports"
)

// KindOnThisDay names the "on this day" composer.
const KindOnThisDay = "onthisday"

// DefaultSchedule maps the hour of day to the entry posted at that hour.
var DefaultSchedule = map[int]int{8: 0, 10: 1, 12: 2, 14: 3, 16: 4}

// OnThisDayDeps wires the collaborators of the "on this day" composer.
type OnThisDayDeps struct {
	Source   ports.FeedSource
	Cache    ports.FeedCache
	Parser   *onthisday.Parser
	Schedule map[int]int
	Logger   *slog.Logger
}

// OnThisDay posts one historical event of today's feed item.
type OnThisDay struct {
	source   ports.FeedSource
	cache    ports.FeedCache
	parser   *onthisday.Parser
	schedule map[int]int
	logger   *slog.Logger
}

var _ composer.Composer = (*OnThisDay)(nil)

// NewOnThisDay constructs the composer.
func NewOnThisDay(deps OnThisDayDeps) *OnThisDay {
	parser := deps.Parser
	if parser == nil {
		parser = onthisday.NewParser("")
	}
	schedule := deps.Schedule
	if schedule == nil {
		schedule = DefaultSchedule
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OnThisDay{
		source:   deps.Source,
		cache:    deps.Cache,
		parser:   parser,
		schedule: schedule,
		logger:   logger,
	}
}

// Name identifies the composer inside the registry.
func (o *OnThisDay) Name() string {
	return KindOnThisDay
}

// Compose picks the scheduled (or requested) entry of today's feed item.
func (o *OnThisDay) Compose(ctx context.Context, req composer.Request) (*domain.Post, error) {
	item, err := o.TodayFeedItem(ctx, req)
	if err != nil {
		return nil, err
	}

	entries, err := o.parser.Parse(item.Summary)
	if err != nil {
		return nil, fmt.Errorf("parse feed item %q: %w", item.Title, err)
	}

	var index int
	if req.Item != nil {
		index = *req.Item
	} else {
		scheduled, ok := o.schedule[req.Now.Hour()]
		if !ok {
			o.logger.Debug("no entry scheduled", "hour", req.Now.Hour())
			return nil, nil
		}
		index = scheduled
	}

	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("%w: index %d, feed item has %d", domain.ErrNoSuchItem, index, len(entries))
	}
	entry := entries[index]
	o.logger.Debug("entry selected", "index", index, "year", entry.Year, "links", len(entry.Links), "image", entry.Image != nil)

	return &domain.Post{
		Kind:   KindOnThisDay,
		Item:   index,
		Text:   onthisday.Format(entry, req.Now),
		Image:  entry.Image,
		Unique: true,
	}, nil
}

// TodayFeedItem returns today's feed item, from the cache when it is fresh
// and from the feed otherwise. The cache is rewritten on every success.
func (o *OnThisDay) TodayFeedItem(ctx context.Context, req composer.Request) (domain.FeedItem, error) {
	item, fresh := o.cached(req)
	if !fresh {
		if o.source == nil {
			return domain.FeedItem{}, fmt.Errorf("feed source is not configured")
		}
		items, err := o.source.Fetch(ctx)
		if err != nil {
			return domain.FeedItem{}, fmt.Errorf("fetch feed: %w", err)
		}

		found := false
		for _, candidate := range items {
			if candidate.IsFor(req.Now) {
				item, found = candidate, true
				break
			}
		}
		if !found {
			return domain.FeedItem{}, domain.ErrNoEntryForToday
		}
		o.logger.Info("feed item fetched", "title", item.Title, "updated", item.Updated)
	}

	if o.cache != nil {
		blob, err := json.Marshal(item)
		if err != nil {
			return domain.FeedItem{}, fmt.Errorf("encode cache: %w", err)
		}
		if err := o.cache.Write(blob); err != nil {
			return domain.FeedItem{}, fmt.Errorf("write cache: %w", err)
		}
	}

	return item, nil
}

func (o *OnThisDay) cached(req composer.Request) (domain.FeedItem, bool) {
	if o.cache == nil {
		return domain.FeedItem{}, false
	}

	blob, err := o.cache.Read()
	if err != nil {
		o.logger.Warn("cache unreadable", "error", err)
		return domain.FeedItem{}, false
	}
	if blob == nil {
		return domain.FeedItem{}, false
	}

	var item domain.FeedItem
	if err := json.Unmarshal(blob, &item); err != nil {
		o.logger.Warn("cache undecodable", "error", err)
		return domain.FeedItem{}, false
	}
	if _, err := item.Day(); err != nil {
		o.logger.Warn("cache has invalid timestamp", "updated", item.Updated, "error", err)
		return domain.FeedItem{}, false
	}
	if !item.IsFor(req.Now) {
		o.logger.Debug("cache stale", "updated", item.Updated)
		return domain.FeedItem{}, false
	}

	o.logger.Debug("cache hit", "updated", item.Updated)
	return item, true
}
