package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/service"
	"github.com/localtrades/contractor-directory/internal/validation"
)

// maxUploadSize caps multipart upload bodies at 10 MiB.
const maxUploadSize = 10 << 20

func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getReview"

	review, err := s.reviews.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Review{"review": review})
}

func (s *Server) listContractorReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listContractorReviews"

	page, limit, err := parsePaging(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	result, err := s.reviews.ListByContractor(r.Context(), chi.URLParam(r, "id"), page, limit)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createReview"

	var req createReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review := domain.Review{
		UserID:              req.UserID,
		ContractorID:        req.ContractorID,
		OverallRating:       req.OverallRating,
		QualityRating:       req.QualityRating,
		TimelinessRating:    req.TimelinessRating,
		CommunicationRating: req.CommunicationRating,
		PricingRating:       req.PricingRating,
		CleanlinessRating:   req.CleanlinessRating,
		Title:               req.Title,
		Content:             req.Content,
		WorkCity:            req.WorkCity,
		WorkDate:            req.WorkDate,
		ProjectCost:         req.ProjectCost,
		WouldRecommend:      req.WouldRecommend,
	}

	created, err := s.reviews.CreateReview(r.Context(), review)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Review{"review": created})
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateReview"

	var req updateReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review := domain.Review{
		ID:                  chi.URLParam(r, "id"),
		OverallRating:       req.OverallRating,
		QualityRating:       req.QualityRating,
		TimelinessRating:    req.TimelinessRating,
		CommunicationRating: req.CommunicationRating,
		PricingRating:       req.PricingRating,
		CleanlinessRating:   req.CleanlinessRating,
		Title:               req.Title,
		Content:             req.Content,
		WorkCity:            req.WorkCity,
		WorkDate:            req.WorkDate,
		ProjectCost:         req.ProjectCost,
		WouldRecommend:      req.WouldRecommend,
	}

	updated, err := s.reviews.UpdateReview(r.Context(), review)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Review{"review": updated})
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.deleteReview"

	if err := s.reviews.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) voteReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.voteReview"

	var req voteReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.reviews.VoteReview(r.Context(), chi.URLParam(r, "id"), req.Helpful); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "voted"})
}

func (s *Server) uploadReviewPhoto(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.uploadReviewPhoto"

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("photo")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing 'photo' file field")
		return
	}
	defer file.Close()

	var caption *string
	if v := r.FormValue("caption"); v != "" {
		caption = &v
	}

	sortOrder := 0
	if v := r.FormValue("sort_order"); v != "" {
		sortOrder, err = strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "field 'sort_order' must be an integer")
			return
		}
	}

	photo, err := s.reviews.AttachPhoto(r.Context(), chi.URLParam(r, "id"), header.Filename, file, caption, sortOrder)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.ReviewPhoto{"photo": photo})
}

func (s *Server) uploadReviewDocument(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.uploadReviewDocument"

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("document")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing 'document' file field")
		return
	}
	defer file.Close()

	docType := domain.DocumentType(r.FormValue("type"))
	if docType != domain.DocumentTypeEstimate && docType != domain.DocumentTypeInvoice {
		s.respondError(w, http.StatusBadRequest, "field 'type' must be 'estimate' or 'invoice'")
		return
	}

	doc, err := s.reviews.AttachDocument(r.Context(), chi.URLParam(r, "id"), header.Filename, file, docType, header.Size)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.ReviewDocument{"document": doc})
}

// parsePaging reads the page and limit query parameters with their defaults.
func parsePaging(r *http.Request) (page, limit int, err error) {
	page, limit = 1, service.DefaultPageLimit

	if v := r.URL.Query().Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, &validation.ValidationError{Errors: []string{"parameter 'page' must be a positive integer"}}
		}
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > service.MaxPageLimit {
			return 0, 0, &validation.ValidationError{Errors: []string{"parameter 'limit' must be between 1 and 100"}}
		}
	}

	return page, limit, nil
}
