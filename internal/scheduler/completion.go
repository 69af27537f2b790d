// Package scheduler holds the periodic background sweeps: promoting
// fully-funded sparks and resending failed notifications.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"sparkfund/internal/service"
)

// CompletionSweeper periodically promotes ACTIVE sparks that have reached
// their goal to COMPLETED.
type CompletionSweeper struct {
	sparks   service.SparkService
	interval time.Duration
	logger   *slog.Logger
}

// NewCompletionSweeper creates a CompletionSweeper.
func NewCompletionSweeper(sparks service.SparkService, interval time.Duration, logger *slog.Logger) *CompletionSweeper {
	return &CompletionSweeper{sparks: sparks, interval: interval, logger: logger}
}

// Run polls on a fixed interval until the context is cancelled.
func (s *CompletionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// SweepOnce completes every eligible spark. Each completion is independent:
// one failure is logged and does not block the rest. Re-running is safe
// because completed sparks drop out of the eligibility query.
func (s *CompletionSweeper) SweepOnce(ctx context.Context) {
	sparks, err := s.sparks.FindCompletable(ctx)
	if err != nil {
		s.logger.Error("completion sweep: failed to find eligible sparks", "error", err)
		return
	}
	if len(sparks) == 0 {
		s.logger.Info("completion sweep: no sparks found for completion")
		return
	}
	for _, spark := range sparks {
		if err := s.sparks.Complete(ctx, spark.ID); err != nil {
			s.logger.Error("completion sweep: failed to complete spark", "spark_id", spark.ID, "error", err)
			continue
		}
		s.logger.Info("completion sweep: spark completed", "spark_id", spark.ID, "title", spark.Title)
	}
}
