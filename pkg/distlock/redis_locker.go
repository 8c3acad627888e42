package distlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still carries the caller's
// owner token, so a holder whose lease expired cannot release a lock that has
// since been granted to somebody else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker on top of a shared Redis instance, making the
// mutual exclusion hold across all service instances. Each acquisition writes
// a unique owner token with a lease TTL; contended acquisitions poll at the
// configured retry interval.
type RedisLocker struct {
	client redis.UniversalClient
	cfg    Config
}

// NewRedisLocker creates a Locker backed by the given Redis client.
func NewRedisLocker(client redis.UniversalClient, cfg Config) *RedisLocker {
	return &RedisLocker{
		client: client,
		cfg:    cfg.withDefaults(),
	}
}

// Acquire blocks until the lock for key is granted. A zero WaitTimeout waits
// indefinitely; otherwise ErrAcquireTimeout is returned once the wait budget
// is spent. Context cancellation surfaces as the bare ctx.Err; Redis failures
// surface as ErrLockUnavailable joined with the underlying error.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	token := uuid.NewString()

	var timeout <-chan time.Time
	if l.cfg.WaitTimeout > 0 {
		timer := time.NewTimer(l.cfg.WaitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	ticker := time.NewTicker(l.cfg.RetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.cfg.LeaseTTL).Result()
		if err != nil {
			// Cancellation is the caller's decision, not store unavailability,
			// even when it surfaces through the store call.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, errors.Join(ErrLockUnavailable, err)
		}
		if ok {
			return l.releaseFunc(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, ErrAcquireTimeout
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaseFunc(key, token string) ReleaseFunc {
	var mu sync.Mutex
	released := false

	return func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		if released {
			return ErrNotHeld
		}
		released = true

		n, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int64()
		if err != nil {
			return errors.Join(ErrLockUnavailable, err)
		}
		if n == 0 {
			// Lease expired and the key is gone or re-acquired by another holder.
			return ErrNotHeld
		}
		return nil
	}
}
