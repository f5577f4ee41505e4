// api/cache/fetch.go
package cache

import (
	"context"
	"time"
)

// GetOrFetch returns the cached value at key, or calls fetch and caches its
// result for ttl. Fetch errors are returned and nothing is cached. Cache
// failures only cost a redundant fetch.
func GetOrFetch[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if s.Get(ctx, key, &cached) {
		return cached, nil
	}

	if !s.coalesce {
		return fetchAndStore(ctx, s, key, ttl, fetch)
	}

	// The shared fetch outlives the caller that started it.
	ch := s.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTTL)
		defer cancel()
		return fetchAndStore(fetchCtx, s, key, ttl, fetch)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func fetchAndStore[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}
	s.Set(ctx, key, value, ttl)
	return value, nil
}
