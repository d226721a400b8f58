package session

import (
	"context"
	"log/slog"
	"time"
)

// RunJanitor purges expired sessions every interval until ctx is done.
func RunJanitor(ctx context.Context, svc *Service, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("session janitor started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			logger.Info("session janitor stopped")
			return
		case <-ticker.C:
			if _, err := svc.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
				logger.Error("session purge failed", "error", err)
			}
		}
	}
}
