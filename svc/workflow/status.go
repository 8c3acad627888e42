package workflow

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/distlock"
	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
)

// StatusChange describes a committed transition, delivered to the optional
// notifier hook after the lock has been released.
type StatusChange struct {
	Kind lifecycle.Kind
	ID   uuid.UUID
	From lifecycle.Status
	To   lifecycle.Status
}

// NotifyFunc receives committed status changes. It runs outside the critical
// section on its own goroutine and must not assume the entity is still in the
// reported state.
type NotifyFunc func(ctx context.Context, change StatusChange)

// StatusCoordinator is the only permitted writer of entity status. Every
// operation runs the same sequence: acquire the per-entity lock, load,
// validate against the kind's ruleset, mutate, persist, release. The lock
// covers the full read-validate-write cycle so concurrent callers on the same
// entity are strictly serialized while unrelated entities proceed in
// parallel.
type StatusCoordinator struct {
	store  Store
	locker distlock.Locker
	log    *slog.Logger
	now    func() time.Time
	notify NotifyFunc
}

// StatusOption configures a StatusCoordinator.
type StatusOption func(*StatusCoordinator)

// WithLogger sets a custom logger for the coordinator.
func WithLogger(log *slog.Logger) StatusOption {
	return func(c *StatusCoordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock overrides the time source used for side-effect timestamps.
func WithClock(now func() time.Time) StatusOption {
	return func(c *StatusCoordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithNotifier registers a hook invoked after every committed transition.
func WithNotifier(fn NotifyFunc) StatusOption {
	return func(c *StatusCoordinator) {
		c.notify = fn
	}
}

// NewStatusCoordinator creates the transition coordinator.
func NewStatusCoordinator(store Store, locker distlock.Locker, opts ...StatusOption) (*StatusCoordinator, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if locker == nil {
		return nil, ErrLockerRequired
	}
	c := &StatusCoordinator{
		store:  store,
		locker: locker,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Transition moves the entity to target if the kind's ruleset allows the edge
// from its current status. It returns ErrNotFound when the id does not
// resolve and a lifecycle.IllegalTransitionError when the edge is not
// permitted; in both cases nothing is persisted.
func (c *StatusCoordinator) Transition(ctx context.Context, kind lifecycle.Kind, id uuid.UUID, target lifecycle.Status) error {
	return c.transition(ctx, kind, id, target, nil)
}

// Approve is Transition specialized to the APPROVED target.
func (c *StatusCoordinator) Approve(ctx context.Context, kind lifecycle.Kind, id uuid.UUID) error {
	return c.Transition(ctx, kind, id, lifecycle.StatusApproved)
}

// Reject is Transition specialized to the REJECTED target.
func (c *StatusCoordinator) Reject(ctx context.Context, kind lifecycle.Kind, id uuid.UUID) error {
	return c.Transition(ctx, kind, id, lifecycle.StatusRejected)
}

// ApproveProject approves a project and records the auditing mediator in the
// same critical section. The mediator must exist.
func (c *StatusCoordinator) ApproveProject(ctx context.Context, id, approvedBy uuid.UUID) error {
	return c.transition(ctx, lifecycle.KindProject, id, lifecycle.StatusApproved, func(ctx context.Context, ent statusEntity) error {
		if _, err := c.store.GetUser(ctx, approvedBy); err != nil {
			return err
		}
		ent.(*Project).AuditedBy = &approvedBy
		return nil
	})
}

// ProcessOrder moves an order to PROCESSING and records the mediator taking
// it over.
func (c *StatusCoordinator) ProcessOrder(ctx context.Context, id, processedBy uuid.UUID) error {
	return c.transition(ctx, lifecycle.KindOrder, id, lifecycle.StatusProcessing, func(ctx context.Context, ent statusEntity) error {
		if _, err := c.store.GetUser(ctx, processedBy); err != nil {
			return err
		}
		ent.(*Order).ProcessedBy = &processedBy
		return nil
	})
}

// CompleteOrder moves an order to DONE and applies the settlement fields in
// the same critical section, so a concurrent reader never observes DONE with
// incomplete completion fields.
func (c *StatusCoordinator) CompleteOrder(ctx context.Context, id uuid.UUID, completion OrderCompletion) error {
	return c.transition(ctx, lifecycle.KindOrder, id, lifecycle.StatusDone, func(ctx context.Context, ent statusEntity) error {
		order := ent.(*Order)
		order.ContractFileID = completion.ContractFileID
		order.PaymentBillFileID = completion.PaymentBillFileID
		order.CertImageIDs = completion.CertImageIDs
		order.ContractSignedAt = completion.ContractSignedAt
		order.PaidAt = completion.PaidAt
		order.DeliveredAt = completion.DeliveredAt
		return nil
	})
}

// transition is the single lock-load-validate-mutate-persist sequence every
// public operation shares. mutate, when set, runs after validation and before
// persisting, still inside the lock.
func (c *StatusCoordinator) transition(
	ctx context.Context,
	kind lifecycle.Kind,
	id uuid.UUID,
	target lifecycle.Status,
	mutate func(ctx context.Context, ent statusEntity) error,
) error {
	rules, err := lifecycle.Rules(kind)
	if err != nil {
		return err
	}

	key := kind.LockKey(id.String())
	c.log.DebugContext(ctx, "acquiring entity lock", slog.String("key", key))

	var change *StatusChange
	err = distlock.WithLock(ctx, c.locker, key, func(ctx context.Context) error {
		ent, err := c.load(ctx, kind, id)
		if err != nil {
			return err
		}

		from := ent.currentStatus()
		if !rules.CanTransition(from, target) {
			return lifecycle.NewIllegalTransitionError(kind, from, target)
		}

		if mutate != nil {
			if err := mutate(ctx, ent); err != nil {
				return err
			}
		}

		ent.applyStatus(target, c.now())
		if err := c.save(ctx, ent); err != nil {
			return err
		}

		change = &StatusChange{Kind: kind, ID: id, From: from, To: target}
		return nil
	})
	c.log.DebugContext(ctx, "released entity lock", slog.String("key", key))
	if err != nil {
		return err
	}

	c.log.InfoContext(ctx, "status transition committed",
		slog.String("kind", kind.String()),
		slog.String("entity_id", id.String()),
		slog.String("from", change.From.String()),
		slog.String("to", change.To.String()),
	)
	c.dispatch(ctx, *change)
	return nil
}

// dispatch runs the notifier hook on its own goroutine with a detached,
// bounded context. A panicking hook must not take the request down.
func (c *StatusCoordinator) dispatch(ctx context.Context, change StatusChange) {
	if c.notify == nil {
		return
	}
	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("status notifier panicked",
					slog.String("kind", change.Kind.String()),
					slog.String("entity_id", change.ID.String()),
					slog.Any("panic", r),
				)
			}
		}()

		notifyCtx, cancel := context.WithTimeout(notifyCtx, 10*time.Second)
		defer cancel()
		c.notify(notifyCtx, change)
	}()
}

func (c *StatusCoordinator) load(ctx context.Context, kind lifecycle.Kind, id uuid.UUID) (statusEntity, error) {
	switch kind {
	case lifecycle.KindUser:
		return c.store.GetUser(ctx, id)
	case lifecycle.KindCompany:
		return c.store.GetCompany(ctx, id)
	case lifecycle.KindProject:
		return c.store.GetProject(ctx, id)
	case lifecycle.KindOrder:
		return c.store.GetOrder(ctx, id)
	default:
		return nil, lifecycle.ErrUnknownKind
	}
}

func (c *StatusCoordinator) save(ctx context.Context, ent statusEntity) error {
	switch e := ent.(type) {
	case *User:
		return c.store.SaveUser(ctx, e)
	case *Company:
		return c.store.SaveCompany(ctx, e)
	case *Project:
		return c.store.SaveProject(ctx, e)
	case *Order:
		return c.store.SaveOrder(ctx, e)
	default:
		return lifecycle.ErrUnknownKind
	}
}
