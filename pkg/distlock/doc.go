// Package distlock provides named, mutually exclusive locks for serializing
// work on a single entity across concurrent requests and service instances.
//
// The resource key is derived from the entity kind and id (for example
// ORDER_LOCK:42), so locks on different entities never contend. Acquisition
// blocks until the lock is granted; release is scoped through a ReleaseFunc
// and is guaranteed by the WithLock helper on every exit path, including
// errors and panics.
//
// Two implementations are provided:
//
//   - RedisLocker: deployment-wide exclusion backed by Redis. A lock is a key
//     written with SET NX and a lease TTL plus a unique owner token; release
//     deletes the key through a compare-and-delete script so an expired holder
//     cannot free somebody else's lock.
//   - MemoryLocker: in-process channel semaphores with identical semantics for
//     tests and local development.
//
// # Waiting
//
// By default acquisition waits indefinitely, matching the blocking behavior
// the coordinators rely on. Setting Config.WaitTimeout bounds the wait and
// surfaces ErrAcquireTimeout instead.
//
// Infrastructure failures (Redis unreachable) are reported as
// ErrLockUnavailable joined with the underlying error and must not be treated
// as domain failures. Context cancellation is the caller's decision, not
// store unavailability, so both lockers surface it as the bare ctx.Err. The
// locker never retries a failed store call; retry policy belongs to the
// caller.
//
// # Usage
//
//	locker := distlock.NewRedisLocker(client, cfg)
//	err := distlock.WithLock(ctx, locker, lifecycle.KindOrder.LockKey(id), func(ctx context.Context) error {
//	    // critical section: load, validate, mutate, persist
//	    return nil
//	})
//
// Locks are not reentrant; callers must not acquire a key they already hold.
package distlock
