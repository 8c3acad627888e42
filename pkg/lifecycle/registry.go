package lifecycle

// approvalRuleset is shared by every kind that goes through the plain
// INIT -> APPROVED / INIT -> REJECTED review flow.
func approvalRuleset() *Ruleset {
	return NewRuleset(StatusInit,
		WithEdge(StatusInit, StatusApproved),
		WithEdge(StatusInit, StatusRejected),
	)
}

func orderRuleset() *Ruleset {
	return NewRuleset(StatusInit,
		WithEdge(StatusInit, StatusProcessing),
		WithEdge(StatusInit, StatusCancelled),
		WithEdge(StatusProcessing, StatusDone),
		WithEdge(StatusProcessing, StatusCancelled),
	)
}

var rulesets = map[Kind]*Ruleset{
	KindUser:    approvalRuleset(),
	KindCompany: approvalRuleset(),
	KindProject: approvalRuleset(),
	KindOrder:   orderRuleset(),
}

// Rules returns the transition ruleset of the given kind.
func Rules(kind Kind) (*Ruleset, error) {
	r, ok := rulesets[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return r, nil
}

// CanTransition reports whether the edge from -> to is legal for the kind.
// Unknown kinds allow nothing.
func CanTransition(kind Kind, from, to Status) bool {
	r, ok := rulesets[kind]
	if !ok {
		return false
	}
	return r.CanTransition(from, to)
}

// Kinds returns every registered entity kind.
func Kinds() []Kind {
	return []Kind{KindUser, KindCompany, KindProject, KindOrder}
}
