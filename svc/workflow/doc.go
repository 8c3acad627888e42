// Package workflow coordinates the approval and fulfillment lifecycles of
// marketplace entities: user and company review, project auditing, and order
// processing.
//
// Two coordinators own all lifecycle mutations:
//
//   - StatusCoordinator is the only writer of entity status. Every transition
//     runs under the entity's distributed lock: load, validate against
//     pkg/lifecycle, apply side effects (review timestamps, auditing
//     mediator, order completion fields), persist, release. Concurrent
//     callers on one entity are strictly serialized; unrelated entities never
//     contend.
//   - DeletionCoordinator removes entities only after an ordered
//     dependent-finder scan (pkg/refguard) proves no live references, holding
//     the same lock across scan and delete so a racing transition cannot
//     leave a dangling reference. Projects are detached from user favorites
//     (the inverse side of the many-to-many) before the record is removed.
//
// Failures are typed: ErrNotFound, lifecycle.IllegalTransitionError and
// ReferencedError are domain results the caller maps to user-facing
// responses; lock and storage failures propagate separately and must never be
// presented as domain errors.
//
// Persistence goes through the Store interface with two implementations:
// PgStore (pgx) for production and MemoryStore for tests and local
// development.
package workflow
