// Package lifecycle defines the status spaces and legal status transitions of
// the marketplace entity kinds (user, company, project, order).
//
// The package is pure data: rulesets are built once at init and only ever
// read, so every function is safe to call concurrently without coordination.
// It performs no I/O and holds no per-entity state; serializing concurrent
// transitions on one entity is the job of svc/workflow together with
// pkg/distlock.
//
// # Transition rules
//
// Users, companies and projects share the review flow:
//
//	INIT -> APPROVED
//	INIT -> REJECTED
//
// Orders follow the fulfillment flow:
//
//	INIT       -> PROCESSING
//	INIT       -> CANCELLED
//	PROCESSING -> DONE
//	PROCESSING -> CANCELLED
//
// Every other pair is illegal, including transitions to the current status.
// APPROVED, REJECTED, CANCELLED and DONE are terminal.
//
// # Usage
//
//	if !lifecycle.CanTransition(lifecycle.KindOrder, from, to) {
//	    return lifecycle.NewIllegalTransitionError(lifecycle.KindOrder, from, to)
//	}
package lifecycle
