package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
)

// User is a marketplace account pending mediator review. ApprovedAt and
// RejectedAt are side-effect timestamps written atomically with the matching
// status transition.
type User struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Status       lifecycle.Status
	ApprovedAt   *time.Time
	RejectedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) applyStatus(status lifecycle.Status, at time.Time) {
	u.Status = status
	switch status {
	case lifecycle.StatusApproved:
		u.ApprovedAt = &at
	case lifecycle.StatusRejected:
		u.RejectedAt = &at
	}
	u.UpdatedAt = at
}

func (u *User) currentStatus() lifecycle.Status { return u.Status }

// Company is a seller or buyer organization.
type Company struct {
	ID        uuid.UUID
	Name      string
	TaxCode   string
	Status    lifecycle.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Company) applyStatus(status lifecycle.Status, at time.Time) {
	c.Status = status
	c.UpdatedAt = at
}

func (c *Company) currentStatus() lifecycle.Status { return c.Status }

// Project is a carbon-credit project registered by a seller company.
// AuditedBy records the mediator who approved it.
type Project struct {
	ID             uuid.UUID
	OwnerCompanyID uuid.UUID
	Name           string
	CreditAmount   int64
	Status         lifecycle.Status
	AuditedBy      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Project) applyStatus(status lifecycle.Status, at time.Time) {
	p.Status = status
	p.UpdatedAt = at
}

func (p *Project) currentStatus() lifecycle.Status { return p.Status }

// Order is a purchase of project credits. The completion fields are written
// in one critical section with the DONE transition and must never be observed
// partially.
type Order struct {
	ID                uuid.UUID
	ProjectID         uuid.UUID
	CreatedBy         uuid.UUID
	ProcessedBy       *uuid.UUID
	CreditAmount      int64
	Unit              string
	Price             string
	Total             string
	Status            lifecycle.Status
	ContractFileID    *uuid.UUID
	PaymentBillFileID *uuid.UUID
	CertImageIDs      []uuid.UUID
	ContractSignedAt  *time.Time
	PaidAt            *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (o *Order) applyStatus(status lifecycle.Status, at time.Time) {
	o.Status = status
	o.UpdatedAt = at
}

func (o *Order) currentStatus() lifecycle.Status { return o.Status }

// OrderCompletion carries the settlement fields applied atomically with the
// PROCESSING -> DONE transition.
type OrderCompletion struct {
	ContractFileID    *uuid.UUID
	PaymentBillFileID *uuid.UUID
	CertImageIDs      []uuid.UUID
	ContractSignedAt  *time.Time
	PaidAt            *time.Time
	DeliveredAt       *time.Time
}

// CompanyReview is a buyer's review of a company.
type CompanyReview struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	ReviewedBy uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// ProjectReview is a buyer's review of a project.
type ProjectReview struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	ReviewedBy uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// Question is a buyer question about a project.
type Question struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	AskedBy   uuid.UUID
	Content   string
	Answer    string
	CreatedAt time.Time
}

// statusEntity is implemented by every kind the status coordinator can drive.
type statusEntity interface {
	currentStatus() lifecycle.Status
	applyStatus(status lifecycle.Status, at time.Time)
}
