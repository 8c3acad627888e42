package workflow

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
)

// MemoryStore is a mutex-guarded in-memory Store for tests and local
// development. Collections are kept in insertion order so the First* probes
// are deterministic, and every read returns a copy so callers outside the
// entity lock cannot observe a half-written record.
type MemoryStore struct {
	mu sync.RWMutex

	users          []*User
	companies      []*Company
	projects       []*Project
	orders         []*Order
	companyReviews []*CompanyReview
	projectReviews []*ProjectReview
	questions      []*Question

	// userID -> ordered project ids
	favorites map[uuid.UUID][]uuid.UUID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		favorites: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *MemoryStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = &cp
			return nil
		}
	}
	s.users = append(s.users, &cp)
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = slices.DeleteFunc(s.users, func(u *User) bool { return u.ID == id })
	delete(s.favorites, id)
	return nil
}

func (s *MemoryStore) ListUsersByStatus(ctx context.Context, status lifecycle.Status, page Page) ([]User, error) {
	page = page.withDefaults()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []User
	skipped := 0
	for _, u := range s.users {
		if u.Status != status {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		if len(out) == page.Limit {
			break
		}
		out = append(out, *u)
	}
	return out, nil
}

func (s *MemoryStore) FirstUserInCompany(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.CompanyID == companyID {
			return u.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) AddFavoriteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.favorites[userID], projectID) {
		return nil
	}
	s.favorites[userID] = append(s.favorites[userID], projectID)
	return nil
}

func (s *MemoryStore) RemoveFavoriteProject(ctx context.Context, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, projects := range s.favorites {
		s.favorites[userID] = slices.DeleteFunc(projects, func(id uuid.UUID) bool { return id == projectID })
	}
	return nil
}

func (s *MemoryStore) FavoriteProjects(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.favorites[userID]), nil
}

func (s *MemoryStore) GetCompany(ctx context.Context, id uuid.UUID) (*Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveCompany(ctx context.Context, company *Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *company
	for i, c := range s.companies {
		if c.ID == company.ID {
			s.companies[i] = &cp
			return nil
		}
	}
	s.companies = append(s.companies, &cp)
	return nil
}

func (s *MemoryStore) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = slices.DeleteFunc(s.companies, func(c *Company) bool { return c.ID == id })
	return nil
}

func (s *MemoryStore) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveProject(ctx context.Context, project *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *project
	for i, p := range s.projects {
		if p.ID == project.ID {
			s.projects[i] = &cp
			return nil
		}
	}
	s.projects = append(s.projects, &cp)
	return nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = slices.DeleteFunc(s.projects, func(p *Project) bool { return p.ID == id })
	return nil
}

func (s *MemoryStore) FirstProjectAuditedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.AuditedBy != nil && *p.AuditedBy == userID {
			return p.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) FirstProjectOwnedBy(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.OwnerCompanyID == companyID {
			return p.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			cp := *o
			cp.CertImageIDs = slices.Clone(o.CertImageIDs)
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveOrder(ctx context.Context, order *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *order
	cp.CertImageIDs = slices.Clone(order.CertImageIDs)
	for i, o := range s.orders {
		if o.ID == order.ID {
			s.orders[i] = &cp
			return nil
		}
	}
	s.orders = append(s.orders, &cp)
	return nil
}

func (s *MemoryStore) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = slices.DeleteFunc(s.orders, func(o *Order) bool { return o.ID == id })
	return nil
}

func (s *MemoryStore) ListOrdersByStatus(ctx context.Context, status lifecycle.Status, page Page) ([]Order, error) {
	page = page.withDefaults()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Order
	skipped := 0
	for _, o := range s.orders {
		if o.Status != status {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		if len(out) == page.Limit {
			break
		}
		cp := *o
		cp.CertImageIDs = slices.Clone(o.CertImageIDs)
		out = append(out, cp)
	}
	return out, nil
}

func (s *MemoryStore) FirstOrderProcessedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ProcessedBy != nil && *o.ProcessedBy == userID {
			return o.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) FirstOrderCreatedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.CreatedBy == userID {
			return o.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) FirstOrderForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ProjectID == projectID {
			return o.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) AddCompanyReview(ctx context.Context, review *CompanyReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *review
	s.companyReviews = append(s.companyReviews, &cp)
	return nil
}

func (s *MemoryStore) AddProjectReview(ctx context.Context, review *ProjectReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *review
	s.projectReviews = append(s.projectReviews, &cp)
	return nil
}

func (s *MemoryStore) FirstCompanyReviewBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.companyReviews {
		if r.ReviewedBy == userID {
			return r.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) FirstProjectReviewBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.projectReviews {
		if r.ReviewedBy == userID {
			return r.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) FirstCompanyReviewForCompany(ctx context.Context, companyID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.companyReviews {
		if r.CompanyID == companyID {
			return r.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) FirstProjectReviewForProject(ctx context.Context, projectID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.projectReviews {
		if r.ProjectID == projectID {
			return r.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (s *MemoryStore) AddQuestion(ctx context.Context, question *Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *question
	s.questions = append(s.questions, &cp)
	return nil
}

func (s *MemoryStore) FirstQuestionAskedBy(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questions {
		if q.AskedBy == userID {
			return q.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}
