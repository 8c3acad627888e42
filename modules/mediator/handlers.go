package mediator

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/svc/workflow"
)

func (s *Service) approveUser(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, lifecycle.KindUser, lifecycle.StatusApproved)
}

func (s *Service) rejectUser(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, lifecycle.KindUser, lifecycle.StatusRejected)
}

func (s *Service) approveCompany(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, lifecycle.KindCompany, lifecycle.StatusApproved)
}

func (s *Service) rejectCompany(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, lifecycle.KindCompany, lifecycle.StatusRejected)
}

type approveProjectRequest struct {
	ApprovedBy uuid.UUID `json:"approved_by"`
}

func (s *Service) approveProject(w http.ResponseWriter, r *http.Request) {
	id, ok := s.entityID(w, r)
	if !ok {
		return
	}
	var req approveProjectRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ApprovedBy == uuid.Nil {
		s.respondError(w, r, http.StatusBadRequest, "approved_by is required")
		return
	}
	s.respond(w, r, s.status.ApproveProject(r.Context(), id, req.ApprovedBy))
}

func (s *Service) rejectProject(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, lifecycle.KindProject, lifecycle.StatusRejected)
}

type processOrderRequest struct {
	ProcessedBy uuid.UUID `json:"processed_by"`
}

func (s *Service) processOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := s.entityID(w, r)
	if !ok {
		return
	}
	var req processOrderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ProcessedBy == uuid.Nil {
		s.respondError(w, r, http.StatusBadRequest, "processed_by is required")
		return
	}
	s.respond(w, r, s.status.ProcessOrder(r.Context(), id, req.ProcessedBy))
}

func (s *Service) cancelOrder(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, lifecycle.KindOrder, lifecycle.StatusCancelled)
}

type completeOrderRequest struct {
	ContractFileID    *uuid.UUID  `json:"contract_file_id"`
	PaymentBillFileID *uuid.UUID  `json:"payment_bill_file_id"`
	CertImageIDs      []uuid.UUID `json:"cert_image_ids"`
	ContractSignedAt  *time.Time  `json:"contract_signed_at"`
	PaidAt            *time.Time  `json:"paid_at"`
	DeliveredAt       *time.Time  `json:"delivered_at"`
}

func (s *Service) completeOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := s.entityID(w, r)
	if !ok {
		return
	}
	var req completeOrderRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, r, s.status.CompleteOrder(r.Context(), id, workflow.OrderCompletion{
		ContractFileID:    req.ContractFileID,
		PaymentBillFileID: req.PaymentBillFileID,
		CertImageIDs:      req.CertImageIDs,
		ContractSignedAt:  req.ContractSignedAt,
		PaidAt:            req.PaidAt,
		DeliveredAt:       req.DeliveredAt,
	}))
}

func (s *Service) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, lifecycle.KindUser)
}

func (s *Service) deleteCompany(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, lifecycle.KindCompany)
}

func (s *Service) deleteProject(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, lifecycle.KindProject)
}

func (s *Service) deleteOrder(w http.ResponseWriter, r *http.Request) {
	s.delete(w, r, lifecycle.KindOrder)
}

func (s *Service) transition(w http.ResponseWriter, r *http.Request, kind lifecycle.Kind, target lifecycle.Status) {
	id, ok := s.entityID(w, r)
	if !ok {
		return
	}
	s.respond(w, r, s.status.Transition(r.Context(), kind, id, target))
}

func (s *Service) delete(w http.ResponseWriter, r *http.Request, kind lifecycle.Kind) {
	id, ok := s.entityID(w, r)
	if !ok {
		return
	}
	s.respond(w, r, s.deletion.Delete(r.Context(), kind, id))
}

func (s *Service) entityID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid entity id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Service) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
