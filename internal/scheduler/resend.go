// internal/scheduler/resend.go
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"sparkfund/internal/notify"
)

// ResendSweeper periodically retries notifications the mail service failed
// to deliver, deleting each from the backlog once it goes through.
type ResendSweeper struct {
	notifier notify.Notifier
	interval time.Duration
	logger   *slog.Logger
}

// NewResendSweeper creates a ResendSweeper.
func NewResendSweeper(notifier notify.Notifier, interval time.Duration, logger *slog.Logger) *ResendSweeper {
	return &ResendSweeper{notifier: notifier, interval: interval, logger: logger}
}

// Run polls on a fixed interval until the context is cancelled.
func (s *ResendSweeper) Run(ctx context.Context) {
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

// SweepOnce resends every backlogged message, removing the ones that
// succeed. Messages that fail again stay in the backlog for the next tick.
func (s *ResendSweeper) SweepOnce(ctx context.Context) {
	failed, err := s.notifier.FailedMessages(ctx)
	if err != nil {
		s.logger.Error("resend sweep: failed to fetch backlog", "error", err)
		return
	}
	if len(failed) == 0 {
		s.logger.Info("resend sweep: no messages found for resending")
		return
	}
	for _, msg := range failed {
		if err := s.notifier.Send(ctx, msg.Recipient, msg.Subject, msg.Body); err != nil {
			s.logger.Error("resend sweep: resend failed", "recipient", msg.Recipient, "error", err)
			continue
		}
		if err := s.notifier.DeleteFailed(ctx, msg.ID); err != nil {
			s.logger.Error("resend sweep: failed to delete resent message", "id", msg.ID, "error", err)
			continue
		}
		s.logger.Info("resend sweep: message resent", "recipient", msg.Recipient, "created_on", msg.CreatedAt.Format("02 01 2006"))
	}
}
