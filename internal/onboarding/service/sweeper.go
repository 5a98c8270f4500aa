package service

import (
	"context"
	"time"
)

// RunSweeper expires sessions idle for longer than ttl every interval until
// ctx is cancelled.
func (s *Service) RunSweeper(ctx context.Context, ttl, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed, err := s.ExpireIdle(ctx, ttl)
			if err != nil {
				s.logger.ErrorContext(ctx, "session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				s.logger.InfoContext(ctx, "expired idle onboarding sessions", "count", removed)
			}
		}
	}
}
