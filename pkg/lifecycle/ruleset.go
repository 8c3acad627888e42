package lifecycle

// Ruleset holds the legal transition edges for one entity kind. It is built
// once at package init and never mutated afterwards, so it is safe to read
// from any number of goroutines without coordination.
type Ruleset struct {
	initial Status
	states  map[Status]struct{}
	edges   map[Status]map[Status]struct{}
}

// RulesetOption configures a Ruleset during construction.
type RulesetOption func(*Ruleset)

// WithStates declares the valid status values of the kind. Statuses referenced
// by WithEdge are registered implicitly; this option exists for states that
// have no edges at all.
func WithStates(states ...Status) RulesetOption {
	return func(r *Ruleset) {
		for _, s := range states {
			r.states[s] = struct{}{}
		}
	}
}

// WithEdge declares a single legal transition.
func WithEdge(from, to Status) RulesetOption {
	return func(r *Ruleset) {
		r.states[from] = struct{}{}
		r.states[to] = struct{}{}
		if _, ok := r.edges[from]; !ok {
			r.edges[from] = make(map[Status]struct{})
		}
		r.edges[from][to] = struct{}{}
	}
}

// NewRuleset builds a transition ruleset with the given initial status.
func NewRuleset(initial Status, opts ...RulesetOption) *Ruleset {
	r := &Ruleset{
		initial: initial,
		states:  map[Status]struct{}{initial: {}},
		edges:   make(map[Status]map[Status]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initial returns the status every entity of the kind is created with.
func (r *Ruleset) Initial() Status {
	return r.initial
}

// Has reports whether s is a valid status of the kind.
func (r *Ruleset) Has(s Status) bool {
	_, ok := r.states[s]
	return ok
}

// CanTransition reports whether the edge from -> to is legal. Any unmatched
// pair is illegal, including self-transitions and statuses the kind does not
// define.
func (r *Ruleset) CanTransition(from, to Status) bool {
	targets, ok := r.edges[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Terminal reports whether s is a valid status with no outgoing edges.
func (r *Ruleset) Terminal(s Status) bool {
	if !r.Has(s) {
		return false
	}
	return len(r.edges[s]) == 0
}
