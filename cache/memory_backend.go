// api/cache/memory_backend.go
package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/match"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryBackend is a bounded in-process backend. Expired entries are dropped
// when read. Patterns follow Redis glob rules: "*" matches any run of
// characters, separators included.
type MemoryBackend struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryBackend(size int) (*MemoryBackend, error) {
	entries, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryBackend{entries: entries, now: time.Now}, nil
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := b.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !b.now().Before(entry.expiresAt) {
		b.entries.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	b.entries.Add(key, memoryEntry{value: stored, expiresAt: b.now().Add(ttl)})
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		b.entries.Remove(key)
	}
	return nil
}

func (b *MemoryBackend) DeletePattern(_ context.Context, pattern string) (int, error) {
	deleted := 0
	for _, key := range b.entries.Keys() {
		if match.Match(key, pattern) {
			if b.entries.Remove(key) {
				deleted++
			}
		}
	}
	return deleted, nil
}

// Len returns the number of stored entries, expired ones included.
func (b *MemoryBackend) Len() int {
	return b.entries.Len()
}
