package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/docit/internal/auth/store"
)

// HousekeepingService periodically removes pending MFA enrollments that were
// never confirmed.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep immediately and then on every tick. Non-blocking.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes expired pending enrollments and returns how many went.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	n, err := s.Store.Enrollments().DeleteExpiredEnrollments(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired MFA enrollments", "error", err)
		return 0
	}
	if n > 0 {
		s.Logger.Info("deleted expired MFA enrollments", "count", n)
	}
	return n
}
