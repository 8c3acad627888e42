package workflow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("entity not found")
	ErrStoreRequired  = errors.New("store is required")
	ErrLockerRequired = errors.New("locker is required")
)

// ReferencedError blocks deletion of an entity still referenced by another
// live entity. Key is the machine-readable reason code; ReferencedBy is the
// conflicting entity's id.
type ReferencedError struct {
	Key          string
	ReferencedBy uuid.UUID
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("deletion blocked: %s (referenced by %s)", e.Key, e.ReferencedBy)
}

// IsReferencedError reports whether err is (or wraps) a ReferencedError.
func IsReferencedError(err error) bool {
	var e *ReferencedError
	return errors.As(err, &e)
}
