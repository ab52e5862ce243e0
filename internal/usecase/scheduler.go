package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"TootBot/internal/composer"
	"TootBot/internal/ports"
)

// Scheduler wires the hourly driver with a runner invocation.
type Scheduler struct {
	driver   ports.Scheduler
	runner   *Runner
	name     string
	location *time.Location
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring runs of one composer.
func NewScheduler(driver ports.Scheduler, runner *Runner, name string, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, runner: runner, name: name, location: loc, logger: logger}
}

// Start registers the runner with the provided scheduler. Failed runs are
// logged and do not stop the schedule.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.runner == nil {
		return nil
	}

	job := func(trigger time.Time) {
		runID := uuid.New().String()[:8]
		req := composer.Request{Now: trigger.In(s.location)}
		s.logger.Debug("scheduled run", "composer", s.name, "run", runID, "at", req.Now)
		if err := s.runner.Run(ctx, s.name, req); err != nil {
			s.logger.Error("scheduled run failed", "composer", s.name, "run", runID, "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
