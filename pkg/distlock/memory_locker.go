package distlock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker implements Locker with in-process channel semaphores. It gives
// the same per-key mutual exclusion and blocking semantics as RedisLocker but
// only within a single process, which is what tests and local development
// need.
type MemoryLocker struct {
	mu          sync.Mutex
	sems        map[string]chan struct{}
	waitTimeout time.Duration
}

// NewMemoryLocker creates a single-process Locker. It honors Config.WaitTimeout;
// lease TTL and retry interval do not apply because waiting is channel-based.
func NewMemoryLocker(cfg Config) *MemoryLocker {
	return &MemoryLocker{
		sems:        make(map[string]chan struct{}),
		waitTimeout: cfg.WaitTimeout,
	}
}

func (l *MemoryLocker) sem(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sems[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.sems[key] = s
	}
	return s
}

// Acquire blocks until the lock for key is free, the context is cancelled, or
// the wait timeout elapses.
func (l *MemoryLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	var timeout <-chan time.Time
	if l.waitTimeout > 0 {
		timer := time.NewTimer(l.waitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	s := l.sem(key)
	select {
	case s <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout:
		return nil, ErrAcquireTimeout
	}

	var mu sync.Mutex
	released := false
	return func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		if released {
			return ErrNotHeld
		}
		released = true
		<-s
		return nil
	}, nil
}
