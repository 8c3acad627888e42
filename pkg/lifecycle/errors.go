package lifecycle

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown entity kind")

// IllegalTransitionError reports a transition request the kind's ruleset does
// not permit. It carries both statuses so callers can render a precise
// message.
type IllegalTransitionError struct {
	Kind Kind
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot update %s status from %s to %s", e.Kind, e.From, e.To)
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given edge.
func NewIllegalTransitionError(kind Kind, from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{Kind: kind, From: from, To: to}
}

// IsIllegalTransitionError reports whether err is (or wraps) an
// IllegalTransitionError.
func IsIllegalTransitionError(err error) bool {
	var e *IllegalTransitionError
	return errors.As(err, &e)
}
