package mediator

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/svc/workflow"
)

// Lister answers the mediator review-queue queries. workflow.Store
// satisfies it.
type Lister interface {
	ListUsersByStatus(ctx context.Context, status lifecycle.Status, page workflow.Page) ([]workflow.User, error)
	ListOrdersByStatus(ctx context.Context, status lifecycle.Status, page workflow.Page) ([]workflow.Order, error)
}

// Service exposes the mediator review surface: status transitions, entity
// deletion and the review-queue listings, backed by the workflow
// coordinators and store.
type Service struct {
	status   *workflow.StatusCoordinator
	deletion *workflow.DeletionCoordinator
	lister   Lister
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates the mediator service.
func New(status *workflow.StatusCoordinator, deletion *workflow.DeletionCoordinator, lister Lister, opts ...Option) *Service {
	s := &Service{
		status:   status,
		deletion: deletion,
		lister:   lister,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the module router.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/mediator", mediator.New(status, deletion, store).Handle())
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/users", s.listUsers)
	r.Get("/orders", s.listOrders)

	r.Route("/users/{id}", func(r chi.Router) {
		r.Post("/approve", s.approveUser)
		r.Post("/reject", s.rejectUser)
		r.Delete("/", s.deleteUser)
	})

	r.Route("/companies/{id}", func(r chi.Router) {
		r.Post("/approve", s.approveCompany)
		r.Post("/reject", s.rejectCompany)
		r.Delete("/", s.deleteCompany)
	})

	r.Route("/projects/{id}", func(r chi.Router) {
		r.Post("/approve", s.approveProject)
		r.Post("/reject", s.rejectProject)
		r.Delete("/", s.deleteProject)
	})

	r.Route("/orders/{id}", func(r chi.Router) {
		r.Post("/process", s.processOrder)
		r.Post("/cancel", s.cancelOrder)
		r.Post("/done", s.completeOrder)
		r.Delete("/", s.deleteOrder)
	})

	return r
}
