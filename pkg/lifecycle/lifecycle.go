package lifecycle

import "strings"

// Kind identifies an entity kind with its own independent status space.
type Kind string

const (
	KindUser    Kind = "user"
	KindCompany Kind = "company"
	KindProject Kind = "project"
	KindOrder   Kind = "order"
)

// LockKey derives the distributed lock resource key for one entity of this
// kind. Same-kind-different-id keys never collide, so unrelated entities
// proceed without contention.
func (k Kind) LockKey(id string) string {
	return strings.ToUpper(string(k)) + "_LOCK:" + id
}

func (k Kind) String() string {
	return string(k)
}

// Status is the lifecycle state of a tracked entity. The set of valid values
// is kind-specific; membership is checked through the kind's Ruleset.
type Status string

const (
	StatusInit       Status = "INIT"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
	StatusProcessing Status = "PROCESSING"
	StatusCancelled  Status = "CANCELLED"
	StatusDone       Status = "DONE"
)

func (s Status) String() string {
	return string(s)
}
