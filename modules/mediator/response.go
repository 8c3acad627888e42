package mediator

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/carbonshop/pkg/distlock"
	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/svc/workflow"
)

type errorResponse struct {
	Error        string `json:"error"`
	Key          string `json:"key,omitempty"`
	ReferencedBy string `json:"referenced_by,omitempty"`
}

// respond maps coordinator results onto the wire: success is 204, typed
// domain failures keep their meaning (404, 409, 503) and anything else is a
// logged 500.
func (s *Service) respond(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var itErr *lifecycle.IllegalTransitionError
	var refErr *workflow.ReferencedError
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		s.respondError(w, r, http.StatusNotFound, err.Error())
	case errors.As(err, &itErr):
		s.respondError(w, r, http.StatusConflict, itErr.Error())
	case errors.As(err, &refErr):
		s.writeJSON(w, http.StatusConflict, errorResponse{
			Error:        refErr.Error(),
			Key:          refErr.Key,
			ReferencedBy: refErr.ReferencedBy.String(),
		})
	case errors.Is(err, distlock.ErrLockUnavailable), errors.Is(err, distlock.ErrAcquireTimeout):
		s.respondError(w, r, http.StatusServiceUnavailable, "try again later")
	case errors.Is(err, lifecycle.ErrUnknownKind):
		s.respondError(w, r, http.StatusBadRequest, err.Error())
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		s.respondError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Service) respondError(w http.ResponseWriter, _ *http.Request, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
