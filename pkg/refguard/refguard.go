package refguard

import (
	"context"

	"github.com/google/uuid"
)

// Warning reports a live reference that blocks deletion. Key is a
// machine-readable reason code the caller can map to a human message;
// ReferencedBy is the id of the entity holding the reference.
type Warning struct {
	Key          string
	ReferencedBy uuid.UUID
}

// FindFunc probes one relationship for a live reference to the entity with
// the given id. It returns the referencing entity's id and true when one
// exists.
type FindFunc func(ctx context.Context, id uuid.UUID) (uuid.UUID, bool, error)

// Probe pairs a reason code with the finder for one relationship.
type Probe struct {
	Key  string
	Find FindFunc
}

// Guard evaluates a fixed, ordered list of probes. The order is policy, not
// an optimization: when several references exist, callers are promised the
// warning of the first registered probe.
type Guard struct {
	probes []Probe
}

// New creates a Guard that checks the given probes in order.
func New(probes ...Probe) *Guard {
	return &Guard{probes: probes}
}

// Check runs the probes in registration order and returns the first live
// reference found, short-circuiting the rest. It returns (nil, nil) when
// every probe reports no reference. A probe error aborts the scan.
func (g *Guard) Check(ctx context.Context, id uuid.UUID) (*Warning, error) {
	for _, p := range g.probes {
		refID, found, err := p.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			return &Warning{Key: p.Key, ReferencedBy: refID}, nil
		}
	}
	return nil, nil
}
