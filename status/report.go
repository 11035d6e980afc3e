package status

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Report logs a registry snapshot every interval and once more when ctx ends
func Report(ctx context.Context, r *Registry, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("final metrics", r.Fields()...)
			return
		case <-ticker.C:
			logger.Info("metrics", r.Fields()...)
		}
	}
}
