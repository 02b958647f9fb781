package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/localtrades/contractor-directory/internal/domain"
)

func (s *Server) fileDispute(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.fileDispute"

	var req fileDisputeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	dispute := domain.ReviewDispute{
		ReviewID:     req.ReviewID,
		ContractorID: req.ContractorID,
		Reason:       req.Reason,
		Description:  req.Description,
	}

	created, err := s.disputes.FileDispute(r.Context(), dispute)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.ReviewDispute{"dispute": created})
}

func (s *Server) getDispute(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getDispute"

	dispute, err := s.disputes.GetDispute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.ReviewDispute{"dispute": dispute})
}

func (s *Server) listContractorDisputes(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listContractorDisputes"

	disputes, err := s.disputes.ListByContractor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.ReviewDispute{"disputes": disputes})
}

func (s *Server) updateDisputeStatus(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateDisputeStatus"

	var req updateDisputeStatusRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	updated, err := s.disputes.UpdateStatus(
		r.Context(),
		chi.URLParam(r, "id"),
		domain.DisputeStatus(req.Status),
		req.AdminNotes,
		req.Resolution,
	)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.ReviewDispute{"dispute": updated})
}
