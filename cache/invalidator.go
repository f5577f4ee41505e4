// api/cache/invalidator.go
package cache

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
)

// Invalidator purges the keys a mutation made stale.
type Invalidator struct {
	store *Store
}

func NewInvalidator(store *Store) *Invalidator {
	return &Invalidator{store: store}
}

// Invalidate deletes every pattern, concurrently when there are several.
// It never fails; the patterns that could not be purged are returned.
func (i *Invalidator) Invalidate(ctx context.Context, patterns ...string) []string {
	switch len(patterns) {
	case 0:
		return nil
	case 1:
		if !i.store.DeletePattern(ctx, patterns[0]) {
			return patterns
		}
		return nil
	}

	var (
		mu     sync.Mutex
		failed []string
	)
	p := pool.New().WithMaxGoroutines(len(patterns))
	for _, pattern := range patterns {
		pattern := pattern
		p.Go(func() {
			if !i.store.DeletePattern(ctx, pattern) {
				mu.Lock()
				failed = append(failed, pattern)
				mu.Unlock()
			}
		})
	}
	p.Wait()

	if len(failed) > 0 {
		logger.Warn("Cache invalidation incomplete",
			zap.Strings("patterns", patterns),
			zap.Strings("failed", failed))
	}
	return failed
}
