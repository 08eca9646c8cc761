// Package maintenance runs the nightly cleanup of soft-deleted records.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger hard-deletes rows soft-deleted before cutoff and reports how many went.
type Purger interface {
	PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error)
}

type Scheduler struct {
	purger    Purger
	schedule  string
	retention time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	now       func() time.Time

	cron *cron.Cron
}

// NewScheduler builds a scheduler for a six-field (with seconds) cron schedule.
func NewScheduler(purger Purger, schedule string, retention time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		purger:    purger,
		schedule:  schedule,
		retention: retention,
		timeout:   5 * time.Minute,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers the purge job and starts the cron runner.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := c.AddFunc(s.schedule, func() { _, _ = s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	s.cron = c
	c.Start()
	s.logger.Info("Cron scheduler started",
		zap.String("schedule", s.schedule),
		zap.Duration("retention", s.retention))
	return nil
}

// Stop halts the runner and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Purge job still running at shutdown")
	}
}

// RunOnce purges everything soft-deleted longer ago than the retention window.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cutoff := s.now().Add(-s.retention)
	n, err := s.purger.PurgeDeleted(ctx, cutoff)
	if err != nil {
		s.logger.Error("Purge failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}

	s.logger.Info("Purge completed", zap.Int64("purged", n), zap.Time("cutoff", cutoff))
	return n, nil
}
