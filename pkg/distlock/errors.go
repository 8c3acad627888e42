package distlock

import "errors"

var (
	ErrKeyRequired     = errors.New("lock key is required")
	ErrLockUnavailable = errors.New("lock store unavailable")
	ErrAcquireTimeout  = errors.New("timed out waiting for lock")
	ErrNotHeld         = errors.New("lock is not held")
)
