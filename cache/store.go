// api/cache/store.go
package cache

import (
	"context"
	"math"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
)

const (
	DefaultTTL = time.Hour
	AuthTTL    = 5 * time.Minute

	defaultOpTimeout    = 250 * time.Millisecond
	defaultFetchTimeout = 10 * time.Second
)

type Options struct {
	// OpTimeout bounds every backend call.
	OpTimeout time.Duration
	// Coalesce makes concurrent GetOrFetch misses on one key share a fetch.
	Coalesce bool
	// FetchTimeout bounds a coalesced fetch, which outlives the caller that
	// started it.
	FetchTimeout time.Duration
	// BreakerFailures consecutive failures open the circuit for BreakerCooldown.
	BreakerFailures uint32
	BreakerCooldown time.Duration
	// EncryptionKey seals stored values with AES-256-GCM when set.
	EncryptionKey []byte
	// ErrorHook observes failures in addition to the warning log.
	ErrorHook func(op, key string, err error)
}

// Store is a best-effort cache. No method returns an error: failures are
// logged, counted and reported as a miss or false.
type Store struct {
	backend  Backend
	codec    *Codec
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker
	coalesce bool
	group    singleflight.Group
	fetchTTL time.Duration
	hook     func(op, key string, err error)
}

func NewStore(backend Backend, opts Options) (*Store, error) {
	codec, err := NewCodec(opts.EncryptionKey)
	if err != nil {
		return nil, err
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = defaultOpTimeout
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultFetchTimeout
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = 30 * time.Second
	}

	failures := opts.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "cache",
		Timeout: opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Cache circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Store{
		backend:  backend,
		codec:    codec,
		timeout:  opts.OpTimeout,
		breaker:  breaker,
		coalesce: opts.Coalesce,
		fetchTTL: opts.FetchTimeout,
		hook:     opts.ErrorHook,
	}, nil
}

func (s *Store) execute(ctx context.Context, op func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	return s.breaker.Execute(func() (interface{}, error) {
		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return op(opCtx)
	})
}

func (s *Store) fail(op, key string, err error) {
	cacheErrorsTotal.WithLabelValues(op).Inc()
	logger.Warn("Cache operation failed",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(err))
	if s.hook != nil {
		s.hook(op, key, err)
	}
}

// Get decodes the entry at key into dest and reports whether it was found.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	res, err := s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		value, found, err := s.backend.Get(ctx, key)
		if err != nil || !found {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		s.fail("get", key, err)
		return false
	}

	value, _ := res.([]byte)
	if value == nil {
		cacheMissesTotal.Inc()
		logger.Debug("Cache miss", zap.String("key", key))
		return false
	}
	if err := s.codec.Decode(value, dest); err != nil {
		s.fail("decode", key, err)
		s.Delete(ctx, key)
		return false
	}

	cacheHitsTotal.Inc()
	logger.Debug("Cache hit", zap.String("key", key))
	return true
}

// Set stores value under key for ttl, rounded up to whole seconds.
// A non-positive ttl means DefaultTTL.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	data, err := s.codec.Encode(value)
	if err != nil {
		s.fail("encode", key, err)
		return false
	}
	ttl = wholeSeconds(ttl)

	_, err = s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, s.backend.Set(ctx, key, data, ttl)
	})
	if err != nil {
		s.fail("set", key, err)
		return false
	}
	logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return true
}

func (s *Store) Delete(ctx context.Context, key string) bool {
	_, err := s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, s.backend.Delete(ctx, key)
	})
	if err != nil {
		s.fail("delete", key, err)
		return false
	}
	return true
}

// DeletePattern removes every key matching the glob. Matching nothing is a success.
func (s *Store) DeletePattern(ctx context.Context, pattern string) bool {
	res, err := s.execute(ctx, func(ctx context.Context) (interface{}, error) {
		return s.backend.DeletePattern(ctx, pattern)
	})
	if err != nil {
		s.fail("delete_pattern", pattern, err)
		return false
	}
	n, _ := res.(int)
	cacheInvalidatedTotal.Add(float64(n))
	logger.Debug("Cache pattern deleted", zap.String("pattern", pattern), zap.Int("keys", n))
	return true
}

func wholeSeconds(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return time.Duration(math.Ceil(ttl.Seconds())) * time.Second
}
