package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/pkg/password"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
)

// NewUserParams carries the fields needed to onboard a user account.
type NewUserParams struct {
	CompanyID uuid.UUID
	Name      string
	Email     string
	Password  string
}

// CreateUser onboards a user at INIT with a bcrypt password hash. Status
// changes after creation go exclusively through the StatusCoordinator.
func CreateUser(ctx context.Context, store Store, hasher *password.Hasher, params NewUserParams) (*User, error) {
	if params.Name == "" {
		return nil, ErrNameRequired
	}
	if params.Email == "" {
		return nil, ErrEmailRequired
	}

	hash, err := hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &User{
		ID:           uuid.New(),
		CompanyID:    params.CompanyID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Status:       lifecycle.StatusInit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCompany registers a company at INIT.
func CreateCompany(ctx context.Context, store Store, name, taxCode string) (*Company, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	company := &Company{
		ID:        uuid.New(),
		Name:      name,
		TaxCode:   taxCode,
		Status:    lifecycle.StatusInit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.SaveCompany(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// CreateProject registers a seller project at INIT.
func CreateProject(ctx context.Context, store Store, ownerCompanyID uuid.UUID, name string, creditAmount int64) (*Project, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	project := &Project{
		ID:             uuid.New(),
		OwnerCompanyID: ownerCompanyID,
		Name:           name,
		CreditAmount:   creditAmount,
		Status:         lifecycle.StatusInit,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := store.SaveProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// NewOrderParams carries the fields of a buyer's order.
type NewOrderParams struct {
	ProjectID    uuid.UUID
	CreatedBy    uuid.UUID
	CreditAmount int64
	Unit         string
	Price        string
	Total        string
}

// CreateOrder places an order at INIT.
func CreateOrder(ctx context.Context, store Store, params NewOrderParams) (*Order, error) {
	now := time.Now()
	order := &Order{
		ID:           uuid.New(),
		ProjectID:    params.ProjectID,
		CreatedBy:    params.CreatedBy,
		CreditAmount: params.CreditAmount,
		Unit:         params.Unit,
		Price:        params.Price,
		Total:        params.Total,
		Status:       lifecycle.StatusInit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
