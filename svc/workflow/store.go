package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
)

// Page bounds list queries.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) withDefaults() Page {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// UserStore persists user accounts and answers the user-directed dependent
// probes.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	SaveUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListUsersByStatus(ctx context.Context, status lifecycle.Status, page Page) ([]User, error)

	// First user belonging to the company, for the company deletion guard.
	FirstUserInCompany(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error)

	// Favorite projects are a many-to-many owned by the user side.
	AddFavoriteProject(ctx context.Context, userID, projectID uuid.UUID) error
	RemoveFavoriteProject(ctx context.Context, projectID uuid.UUID) error
	FavoriteProjects(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// CompanyStore persists companies.
type CompanyStore interface {
	GetCompany(ctx context.Context, id uuid.UUID) (*Company, error)
	SaveCompany(ctx context.Context, company *Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

// ProjectStore persists projects and answers project-directed probes.
type ProjectStore interface {
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	SaveProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	FirstProjectAuditedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	FirstProjectOwnedBy(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error)
}

// OrderStore persists orders and answers order-directed probes.
type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	SaveOrder(ctx context.Context, order *Order) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	ListOrdersByStatus(ctx context.Context, status lifecycle.Status, page Page) ([]Order, error)

	FirstOrderProcessedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	FirstOrderCreatedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	FirstOrderForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, bool, error)
}

// ReviewStore persists company and project reviews.
type ReviewStore interface {
	AddCompanyReview(ctx context.Context, review *CompanyReview) error
	AddProjectReview(ctx context.Context, review *ProjectReview) error

	FirstCompanyReviewBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	FirstProjectReviewBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
	FirstCompanyReviewForCompany(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error)
	FirstProjectReviewForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, bool, error)
}

// QuestionStore persists buyer questions.
type QuestionStore interface {
	AddQuestion(ctx context.Context, question *Question) error
	FirstQuestionAskedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)
}

// Store aggregates the persistence collaborators the coordinators need. Both
// implementations (MemoryStore, PgStore) are synchronous: Get returns
// ErrNotFound for missing ids, Save upserts, Delete is idempotent.
type Store interface {
	UserStore
	CompanyStore
	ProjectStore
	OrderStore
	ReviewStore
	QuestionStore
}
