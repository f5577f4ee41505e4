// api/auth/blacklist.go
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dev-mohitbeniwal/intervene/api/cache"
)

const BlacklistPrefix = "token_blacklist"

var errBlacklistWrite = errors.New("blacklist write failed")

// Blacklist holds hashes of refresh tokens that must never be accepted again.
type Blacklist interface {
	Add(ctx context.Context, hash string, ttl time.Duration) error
	Contains(ctx context.Context, hash string) bool
}

// CacheBlacklist keeps the blacklist in the shared cache store so every
// instance of the service sees it.
type CacheBlacklist struct {
	store *cache.Store
}

func NewCacheBlacklist(store *cache.Store) *CacheBlacklist {
	return &CacheBlacklist{store: store}
}

// Add blacklists hash for ttl. A token whose lifetime already ended needs no entry.
func (b *CacheBlacklist) Add(ctx context.Context, hash string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if !b.store.Set(ctx, cache.EntityKey(BlacklistPrefix, hash), true, ttl) {
		return errBlacklistWrite
	}
	return nil
}

func (b *CacheBlacklist) Contains(ctx context.Context, hash string) bool {
	var listed bool
	return b.store.Get(ctx, cache.EntityKey(BlacklistPrefix, hash), &listed) && listed
}
