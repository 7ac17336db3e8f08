package app

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultPollInterval = 30 * time.Second
	retryInterval       = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// refresher is the slice of ops.Operations the poller drives.
type refresher interface {
	RefreshOffers(ctx context.Context) error
}

// StartPoller launches a background goroutine that reloads offers at a fixed
// cadence. After a failure it retries sooner and backs off exponentially.
// It returns immediately.
func StartPoller(ctx context.Context, r refresher, interval time.Duration, logger *slog.Logger) {
	go runPoller(ctx, r, interval, logger)
}

func runPoller(ctx context.Context, r refresher, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	failures := 0
	for {
		wait := interval
		if err := r.RefreshOffers(ctx); err != nil {
			failures++
			wait = calculateBackoff(failures-1, retryInterval)
			logger.Warn("offer poll failed", "failures", failures, "retry_in", wait.String(), "err", err)
		} else {
			failures = 0
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// calculateBackoff doubles base once per failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
