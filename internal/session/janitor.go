package session

import (
	"context"
	"log/slog"
	"time"
)

// RunJanitor prunes expired revocations every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.PruneRevocations(ctx)
			if err != nil {
				slog.Warn("prune revoked sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("pruned revoked sessions", "count", n)
			}
		}
	}
}
