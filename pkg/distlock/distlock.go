package distlock

import (
	"context"
)

// ReleaseFunc releases a previously acquired lock. It is safe to call more
// than once; repeated calls after a successful release return ErrNotHeld.
type ReleaseFunc func(ctx context.Context) error

// Locker acquires named, mutually exclusive locks. Exactly one holder per
// resource key exists at a time; acquisition blocks until the lock is granted,
// the context is cancelled, or the configured wait timeout elapses.
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

// WithLock runs fn while holding the lock for key. The lock is released on
// every exit path, including an error or panic inside fn. Release uses a
// context detached from ctx's cancellation so that a cancelled request still
// frees the lock.
func WithLock(ctx context.Context, locker Locker, key string, fn func(ctx context.Context) error) error {
	release, err := locker.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer func() {
		_ = release(context.WithoutCancel(ctx))
	}()
	return fn(ctx)
}
