package workflow

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/distlock"
	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/pkg/refguard"
)

// DeletionCoordinator removes entities after proving no other live entity
// still references them. The referential scan and the delete run under the
// same per-entity lock the status coordinator uses, so a transition cannot
// slip in between a passing reference check and the delete.
type DeletionCoordinator struct {
	store  Store
	locker distlock.Locker
	guards map[lifecycle.Kind]*refguard.Guard
	log    *slog.Logger
}

// DeletionOption configures a DeletionCoordinator.
type DeletionOption func(*DeletionCoordinator)

// WithDeletionLogger sets a custom logger for the coordinator.
func WithDeletionLogger(log *slog.Logger) DeletionOption {
	return func(c *DeletionCoordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// NewDeletionCoordinator creates the deletion coordinator with its per-kind
// dependent-finder guards. Probe order is part of the contract: when several
// references exist, the first registered probe decides the warning.
func NewDeletionCoordinator(store Store, locker distlock.Locker, opts ...DeletionOption) (*DeletionCoordinator, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if locker == nil {
		return nil, ErrLockerRequired
	}

	c := &DeletionCoordinator{
		store:  store,
		locker: locker,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c.guards = map[lifecycle.Kind]*refguard.Guard{
		lifecycle.KindUser: refguard.New(
			refguard.Probe{Key: "user.project.auditedBy.referenced", Find: store.FirstProjectAuditedBy},
			refguard.Probe{Key: "user.order.processedBy.referenced", Find: store.FirstOrderProcessedBy},
			refguard.Probe{Key: "user.order.createdBy.referenced", Find: store.FirstOrderCreatedBy},
			refguard.Probe{Key: "user.companyReview.reviewedBy.referenced", Find: store.FirstCompanyReviewBy},
			refguard.Probe{Key: "user.projectReview.reviewedBy.referenced", Find: store.FirstProjectReviewBy},
			refguard.Probe{Key: "user.question.askedBy.referenced", Find: store.FirstQuestionAskedBy},
		),
		lifecycle.KindCompany: refguard.New(
			refguard.Probe{Key: "company.user.company.referenced", Find: store.FirstUserInCompany},
			refguard.Probe{Key: "company.project.ownerCompany.referenced", Find: store.FirstProjectOwnedBy},
			refguard.Probe{Key: "company.companyReview.company.referenced", Find: store.FirstCompanyReviewForCompany},
		),
		lifecycle.KindProject: refguard.New(
			refguard.Probe{Key: "project.order.project.referenced", Find: store.FirstOrderForProject},
			refguard.Probe{Key: "project.projectReview.project.referenced", Find: store.FirstProjectReviewForProject},
		),
		// Orders are leaves: nothing references them.
		lifecycle.KindOrder: refguard.New(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Delete removes the entity after the referential scan passes. It returns
// ErrNotFound when the id does not resolve and a ReferencedError when a live
// reference blocks the deletion; in the latter case nothing is mutated.
func (c *DeletionCoordinator) Delete(ctx context.Context, kind lifecycle.Kind, id uuid.UUID) error {
	guard, ok := c.guards[kind]
	if !ok {
		return lifecycle.ErrUnknownKind
	}

	key := kind.LockKey(id.String())
	err := distlock.WithLock(ctx, c.locker, key, func(ctx context.Context) error {
		if err := c.exists(ctx, kind, id); err != nil {
			return err
		}

		warning, err := guard.Check(ctx, id)
		if err != nil {
			return err
		}
		if warning != nil {
			return &ReferencedError{Key: warning.Key, ReferencedBy: warning.ReferencedBy}
		}

		// Projects are the non-owning side of the favorites relation; detach
		// them from every user before the record goes away.
		if kind == lifecycle.KindProject {
			if err := c.store.RemoveFavoriteProject(ctx, id); err != nil {
				return err
			}
		}

		return c.delete(ctx, kind, id)
	})
	if err != nil {
		return err
	}

	c.log.InfoContext(ctx, "entity deleted",
		slog.String("kind", kind.String()),
		slog.String("entity_id", id.String()),
	)
	return nil
}

func (c *DeletionCoordinator) exists(ctx context.Context, kind lifecycle.Kind, id uuid.UUID) error {
	var err error
	switch kind {
	case lifecycle.KindUser:
		_, err = c.store.GetUser(ctx, id)
	case lifecycle.KindCompany:
		_, err = c.store.GetCompany(ctx, id)
	case lifecycle.KindProject:
		_, err = c.store.GetProject(ctx, id)
	case lifecycle.KindOrder:
		_, err = c.store.GetOrder(ctx, id)
	default:
		err = lifecycle.ErrUnknownKind
	}
	return err
}

func (c *DeletionCoordinator) delete(ctx context.Context, kind lifecycle.Kind, id uuid.UUID) error {
	switch kind {
	case lifecycle.KindUser:
		return c.store.DeleteUser(ctx, id)
	case lifecycle.KindCompany:
		return c.store.DeleteCompany(ctx, id)
	case lifecycle.KindProject:
		return c.store.DeleteProject(ctx, id)
	case lifecycle.KindOrder:
		return c.store.DeleteOrder(ctx, id)
	default:
		return lifecycle.ErrUnknownKind
	}
}
