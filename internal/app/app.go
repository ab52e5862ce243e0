package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"TootBot/internal/composer"
	"TootBot/internal/config"
	"TootBot/internal/domain"
	"TootBot/internal/infrastructure/cache"
	"TootBot/internal/infrastructure/feed"
	"TootBot/internal/infrastructure/horizons"
	"TootBot/internal/infrastructure/mastodon"
	"TootBot/internal/infrastructure/media"
	"TootBot/internal/infrastructure/scheduler"
	"TootBot/internal/infrastructure/storage"
	"TootBot/internal/infrastructure/telegram"
	"TootBot/internal/onthisday"
	"TootBot/internal/usecase"
)

const httpTimeout = 30 * time.Second

// Options carries per-invocation switches from the command line.
type Options struct {
	DryRun bool
	Force  bool
	Out    io.Writer
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	runner  *usecase.Runner
	history *storage.SQLiteRepository
	clock   func() time.Time
}

// New builds a runnable application instance. Without DryRun a Mastodon
// access token must be configured.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if !opts.DryRun && cfg.Mastodon.AccessToken == "" {
		return nil, fmt.Errorf("mastodon access token is required unless --dry-run is set")
	}

	schedule, err := cfg.Schedule.HourMap()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: httpTimeout}

	registry := composer.NewRegistry()
	registry.Register(usecase.NewOnThisDay(usecase.OnThisDayDeps{
		Source:   feed.NewSource(cfg.Feed.URL, cfg.Feed.UserAgent, httpClient, baseLogger.With("component", "feed")),
		Cache:    cache.NewFileCache(cfg.Cache.Path),
		Parser:   onthisday.NewParser(cfg.Feed.SiteOrigin),
		Schedule: schedule,
		Logger:   baseLogger.With("component", "composer.onthisday"),
	}))
	registry.Register(usecase.NewPlanets(
		horizons.NewClient(cfg.Ephemeris.Endpoint, httpClient),
		domain.Planets,
		baseLogger.With("component", "composer.planets"),
	))

	deps := usecase.PublisherDeps{
		Visibility: cfg.Mastodon.Visibility,
		DryRun:     opts.DryRun,
		Force:      opts.Force,
		Out:        opts.Out,
		Logger:     baseLogger.With("component", "publisher"),
	}

	application := &Application{cfg: cfg, logger: baseLogger, clock: time.Now}

	if !opts.DryRun {
		deps.Poster = mastodon.NewPoster(cfg.Mastodon.Server, cfg.Mastodon.AccessToken)
		deps.Downloader = media.NewDownloader(httpClient, cfg.Feed.UserAgent, "")

		repo, err := storage.OpenSQLite(ctx, cfg.Storage.DatabasePath)
		if err != nil {
			return nil, err
		}
		application.history = repo
		deps.Repository = repo

		if cfg.Notifications.Telegram.Enabled() {
			deps.Notifier = telegram.NewNotifier(
				cfg.Notifications.Telegram.BotToken,
				cfg.Notifications.Telegram.ChatID,
			)
		}
	}

	application.runner = usecase.NewRunner(registry, usecase.NewPublisher(deps), opts.Out)
	return application, nil
}

// Run performs a single invocation of the named composer. A non-nil item
// overrides the hour schedule.
func (a *Application) Run(ctx context.Context, name string, item *int) error {
	now := a.clock().In(a.cfg.Schedule.Location())
	return a.runner.Run(ctx, name, composer.Request{Now: now, Item: item})
}

// RunDaemon runs the named composer now and at every full hour until ctx
// is cancelled.
func (a *Application) RunDaemon(ctx context.Context, name string) error {
	sched := usecase.NewScheduler(
		scheduler.NewHourlyScheduler(time.Hour),
		a.runner,
		name,
		a.cfg.Schedule.Location(),
		a.logger.With("component", "scheduler"),
	)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("daemon started", "composer", name)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), httpTimeout)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("daemon stopped", "composer", name)
	return nil
}

// History lists the posts recorded on day (YYYY-MM-DD, today when empty).
// It needs no access token.
func History(ctx context.Context, cfg config.Config, day string) ([]domain.PostedRecord, error) {
	if day == "" {
		day = time.Now().In(cfg.Schedule.Location()).Format(time.DateOnly)
	}
	repo, err := storage.OpenSQLite(ctx, cfg.Storage.DatabasePath)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	return repo.History(ctx, day)
}

// Close releases the history database.
func (a *Application) Close() error {
	if a.history == nil {
		return nil
	}
	return a.history.Close()
}
