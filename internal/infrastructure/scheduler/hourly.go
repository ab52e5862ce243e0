package scheduler

import (
	"context"
	"sync"
	"time"

	"TootBot/internal/ports"
)

// HourlyScheduler runs a job once on start and then at every interval
// boundary (full hours by default). Jobs never overlap.
type HourlyScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*HourlyScheduler)(nil)

// NewHourlyScheduler builds a scheduler; interval <= 0 means one hour.
func NewHourlyScheduler(interval time.Duration) *HourlyScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HourlyScheduler{interval: interval}
}

// Start begins ticking in the background.
func (s *HourlyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)
		job(time.Now())
		for {
			now := time.Now()
			timer := time.NewTimer(now.Truncate(s.interval).Add(s.interval).Sub(now))
			select {
			case t := <-timer.C:
				job(t)
			case <-ctx.Done():
				timer.Stop()
				return
			case <-stop:
				timer.Stop()
				return
			}
		}
	}()

	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *HourlyScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
