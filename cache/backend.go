// api/cache/backend.go
package cache

import (
	"context"
	"time"
)

// Backend is the raw key/value store behind a Store. A missing key is
// reported as found == false with a nil error.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePattern removes every key matching a Redis style glob and
	// returns how many were removed.
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

func hasGlobMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?', '[', '\\':
			return true
		}
	}
	return false
}
