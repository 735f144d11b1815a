// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"context"
	"sync"
	"time"

	"watchlist/internal/logging"
)

const (
	// DefaultCheckInterval is used when no interval is configured.
	DefaultCheckInterval = 1 * time.Hour
	// MinCheckInterval is the minimum time between checks to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute
	// runTimeout bounds a single pruning run.
	runTimeout = 30 * time.Second
)

// Service provides the background worker for automated housekeeping.
type Service struct {
	Deps     Dependencies
	interval time.Duration
	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	now func() time.Time
}

// NewService creates a new housekeeping service instance.
// A zero interval disables the background worker.
func NewService(deps Dependencies, interval time.Duration) *Service {
	return &Service{
		Deps:     deps,
		interval: interval,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start kicks off the background housekeeping service.
func (s *Service) Start() {
	if s.interval == 0 {
		logging.Log.Info("Background housekeeping is disabled (cleanup_interval is 0).")
		close(s.done)
		return
	}

	logging.Log.Info("Starting background housekeeping service.")
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		defer close(s.done)
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				nextRun := s.scheduleNextRun()
				s.timer.Reset(nextRun)
				logging.Log.Debugf("Next housekeeping check scheduled in %v.", nextRun)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service and waits for a
// running check to finish. It is safe to call more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		logging.Log.Info("Stopping background housekeeping service.")
		close(s.stopCh)
	})
	<-s.done
}

// scheduleNextRun calculates the duration until the next housekeeping event.
func (s *Service) scheduleNextRun() time.Duration {
	if s.interval <= 0 {
		return DefaultCheckInterval
	}
	if s.interval < MinCheckInterval {
		return MinCheckInterval
	}
	return s.interval
}

// runChecks prunes expired sessions. Failures are logged and retried on the next tick.
func (s *Service) runChecks() {
	logging.Log.Debug("Housekeeping service: Pruning expired sessions...")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := RunOnce(ctx, s.Deps, s.now()); err != nil {
		logging.Log.Errorf("Housekeeping run failed: %v", err)
	}
}
