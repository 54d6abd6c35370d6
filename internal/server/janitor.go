package server

import (
	"context"
	"log/slog"
	"time"
)

// Purger удаляет истекшие записи
type Purger interface {
	PurgeExpired(ctx context.Context) (challenges, sessions int, err error)
}

// RunJanitor периодически удаляет истекшие challenge и сессии до отмены ctx
func RunJanitor(ctx context.Context, logger *slog.Logger, purger Purger, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			challenges, sessions, err := purger.PurgeExpired(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.ErrorContext(ctx, "failed to purge expired records", slog.Any("error", err))
				continue
			}
			if challenges > 0 || sessions > 0 {
				logger.InfoContext(ctx, "expired records purged",
					slog.Int("challenges", challenges),
					slog.Int("sessions", sessions))
			}
		}
	}
}
