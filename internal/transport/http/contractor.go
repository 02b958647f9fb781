package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/service"
	"github.com/localtrades/contractor-directory/internal/validation"
)

func (s *Server) searchContractors(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.searchContractors"

	params, err := parseSearchParams(r)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	filters := domain.SearchFilters{
		Query:              params.Query,
		Category:           params.Category,
		Location:           params.Location,
		Radius:             params.Radius,
		MinRating:          params.MinRating,
		MinYearsInBusiness: params.MinYearsInBusiness,
		Verified:           params.Verified,
		Featured:           params.Featured,
	}

	result, err := s.contractors.Search(r.Context(), filters, params.Page, params.Limit)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, result)
}

func (s *Server) getContractor(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getContractor"

	contractor, err := s.contractors.GetContractor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Contractor{"contractor": contractor})
}

func (s *Server) createContractor(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createContractor"

	var req createContractorRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	contractor, err := s.contractors.CreateContractor(r.Context(), contractorFromRequest(req), req.CategoryIDs)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Contractor{"contractor": contractor})
}

func (s *Server) updateContractor(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.updateContractor"

	var req updateContractorRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	contractor := contractorFromRequest(createContractorRequest(req))
	contractor.ID = chi.URLParam(r, "id")

	updated, err := s.contractors.UpdateContractor(r.Context(), contractor, req.CategoryIDs)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Contractor{"contractor": updated})
}

func (s *Server) recomputeRating(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.recomputeRating"

	id := chi.URLParam(r, "id")

	if _, err := s.contractors.GetContractor(r.Context(), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if err := s.reviews.RecomputeRating(r.Context(), id); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "recomputed"})
}

func contractorFromRequest(req createContractorRequest) domain.Contractor {
	serviceRadius := req.ServiceRadius
	if serviceRadius == 0 {
		serviceRadius = 25
	}

	return domain.Contractor{
		BusinessName:    req.BusinessName,
		OwnerName:       req.OwnerName,
		Email:           req.Email,
		Phone:           req.Phone,
		Website:         req.Website,
		Description:     req.Description,
		YearsInBusiness: req.YearsInBusiness,
		LicenseNumber:   req.LicenseNumber,
		InsuranceInfo:   req.InsuranceInfo,
		ServiceRadius:   serviceRadius,
		ServiceAreas:    req.ServiceAreas,
	}
}

// parseSearchParams decodes the search query string, applies paging defaults
// and validates the result.
func parseSearchParams(r *http.Request) (searchParams, error) {
	q := r.URL.Query()

	params := searchParams{
		Page:  1,
		Limit: service.DefaultPageLimit,
	}

	params.Query = optionalString(q.Get("query"))
	params.Category = optionalString(q.Get("category"))
	params.Location = optionalString(q.Get("location"))

	if v := q.Get("radius"); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil {
			return searchParams{}, &validation.ValidationError{Errors: []string{"parameter 'radius' must be an integer"}}
		}
		params.Radius = &radius
	}

	if v := q.Get("min_rating"); v != "" {
		minRating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return searchParams{}, &validation.ValidationError{Errors: []string{"parameter 'min_rating' must be a number"}}
		}
		params.MinRating = &minRating
	}

	if v := q.Get("min_years_in_business"); v != "" {
		minYears, err := strconv.Atoi(v)
		if err != nil {
			return searchParams{}, &validation.ValidationError{Errors: []string{"parameter 'min_years_in_business' must be an integer"}}
		}
		params.MinYearsInBusiness = &minYears
	}

	if v := q.Get("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return searchParams{}, &validation.ValidationError{Errors: []string{"parameter 'verified' must be a boolean"}}
		}
		params.Verified = &verified
	}

	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return searchParams{}, &validation.ValidationError{Errors: []string{"parameter 'featured' must be a boolean"}}
		}
		params.Featured = &featured
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return searchParams{}, &validation.ValidationError{Errors: []string{"parameter 'page' must be an integer"}}
		}
		params.Page = page
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return searchParams{}, &validation.ValidationError{Errors: []string{"parameter 'limit' must be an integer"}}
		}
		params.Limit = limit
	}

	if err := validation.ValidateStruct(&params); err != nil {
		return searchParams{}, err
	}

	return params, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}

	return &v
}
