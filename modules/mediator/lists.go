package mediator

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/svc/workflow"
)

type userItem struct {
	ID        uuid.UUID        `json:"id"`
	CompanyID uuid.UUID        `json:"company_id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Status    lifecycle.Status `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

type orderItem struct {
	ID           uuid.UUID        `json:"id"`
	ProjectID    uuid.UUID        `json:"project_id"`
	CreatedBy    uuid.UUID        `json:"created_by"`
	ProcessedBy  *uuid.UUID       `json:"processed_by,omitempty"`
	CreditAmount int64            `json:"credit_amount"`
	Unit         string           `json:"unit"`
	Price        string           `json:"price"`
	Total        string           `json:"total"`
	Status       lifecycle.Status `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (s *Service) listUsers(w http.ResponseWriter, r *http.Request) {
	status, page, ok := s.listQuery(w, r, lifecycle.KindUser)
	if !ok {
		return
	}
	users, err := s.lister.ListUsersByStatus(r.Context(), status, page)
	if err != nil {
		s.respond(w, r, err)
		return
	}
	items := make([]userItem, 0, len(users))
	for _, u := range users {
		items = append(items, userItem{
			ID:        u.ID,
			CompanyID: u.CompanyID,
			Name:      u.Name,
			Email:     u.Email,
			Status:    u.Status,
			CreatedAt: u.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Service) listOrders(w http.ResponseWriter, r *http.Request) {
	status, page, ok := s.listQuery(w, r, lifecycle.KindOrder)
	if !ok {
		return
	}
	orders, err := s.lister.ListOrdersByStatus(r.Context(), status, page)
	if err != nil {
		s.respond(w, r, err)
		return
	}
	items := make([]orderItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderItem{
			ID:           o.ID,
			ProjectID:    o.ProjectID,
			CreatedBy:    o.CreatedBy,
			ProcessedBy:  o.ProcessedBy,
			CreditAmount: o.CreditAmount,
			Unit:         o.Unit,
			Price:        o.Price,
			Total:        o.Total,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, items)
}

// listQuery validates the status filter against the kind's state space and
// parses the optional offset/limit paging parameters. Paging defaults are
// applied by the store.
func (s *Service) listQuery(w http.ResponseWriter, r *http.Request, kind lifecycle.Kind) (lifecycle.Status, workflow.Page, bool) {
	q := r.URL.Query()

	rules, err := lifecycle.Rules(kind)
	if err != nil {
		s.respond(w, r, err)
		return "", workflow.Page{}, false
	}
	status := lifecycle.Status(q.Get("status"))
	if !rules.Has(status) {
		s.respondError(w, r, http.StatusBadRequest, "unknown status for "+kind.String())
		return "", workflow.Page{}, false
	}

	var page workflow.Page
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, "invalid offset")
			return "", workflow.Page{}, false
		}
		page.Offset = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, r, http.StatusBadRequest, "invalid limit")
			return "", workflow.Page{}, false
		}
		page.Limit = n
	}
	return status, page, true
}
