package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/localtrades/contractor-directory/internal/domain"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listCategories"

	categories, err := s.categories.ListCategories(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Category{"categories": categories})
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getCategory"

	category, err := s.categories.GetCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Category{"category": category})
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createCategory"

	var req createCategoryRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	category := domain.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
	}

	created, err := s.categories.CreateCategory(r.Context(), category)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Category{"category": created})
}
