// package http implements the HTTP transport layer for the service.
// It handles incoming requests, decodes them, calls the appropriate service methods,
// and encodes the responses.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/localtrades/contractor-directory/internal/apperrors"
	"github.com/localtrades/contractor-directory/internal/identity"
	"github.com/localtrades/contractor-directory/internal/service"
	"github.com/localtrades/contractor-directory/internal/validation"
	"github.com/localtrades/contractor-directory/pkg/logger/sl"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the dependencies for the HTTP server, including the logger and service interfaces.
type Server struct {
	log            *slog.Logger
	contractors    service.ContractorService
	reviews        service.ReviewService
	categories     service.CategoryService
	users          service.UserService
	advertisements service.AdvertisementService
	disputes       service.DisputeService
	providers      *identity.Providers
}

// NewServer creates a new instance of the HTTP server.
func NewServer(
	log *slog.Logger,
	cs service.ContractorService,
	rs service.ReviewService,
	cats service.CategoryService,
	us service.UserService,
	ads service.AdvertisementService,
	ds service.DisputeService,
	providers *identity.Providers,
) *Server {
	return &Server{
		log:            log,
		contractors:    cs,
		reviews:        rs,
		categories:     cats,
		users:          us,
		advertisements: ads,
		disputes:       ds,
		providers:      providers,
	}
}

// Routes sets up the router with all middleware and API endpoints.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(r chi.Router) {
		r.Route("/contractors", func(r chi.Router) {
			r.Get("/", s.searchContractors)
			r.Post("/", s.createContractor)
			r.Get("/{id}", s.getContractor)
			r.Put("/{id}", s.updateContractor)
			r.Get("/{id}/reviews", s.listContractorReviews)
			r.Get("/{id}/disputes", s.listContractorDisputes)
			r.Post("/{id}/recompute-rating", s.recomputeRating)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", s.createReview)
			r.Get("/{id}", s.getReview)
			r.Put("/{id}", s.updateReview)
			r.Delete("/{id}", s.deleteReview)
			r.Post("/{id}/vote", s.voteReview)
			r.Post("/{id}/photos", s.uploadReviewPhoto)
			r.Post("/{id}/documents", s.uploadReviewDocument)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
			r.Get("/{slug}", s.getCategory)
		})

		r.Route("/ads", func(r chi.Router) {
			r.Get("/", s.listActiveAdvertisements)
			r.Post("/", s.createAdvertisement)
			r.Get("/{id}", s.getAdvertisement)
			r.Post("/{id}/impression", s.trackImpression)
			r.Post("/{id}/click", s.trackClick)
		})

		r.Route("/disputes", func(r chi.Router) {
			r.Post("/", s.fileDispute)
			r.Get("/{id}", s.getDispute)
			r.Patch("/{id}/status", s.updateDisputeStatus)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", s.getUser)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Get("/{provider}/login", s.authLogin)
			r.Get("/{provider}/callback", s.authCallback)
		})
	})

	return mux
}

// respond is a helper function to encode data to JSON and write it to the response.
// It centralizes setting the Content-Type header and writing the status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

// respondError is a convenience wrapper around respond for sending simple error messages.
func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respond(w, code, map[string]string{"error": message})
}

// decodeAndValidate is a helper that deserializes a JSON request body into a struct
// and then runs validation checks on it.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	if err := validation.ValidateStruct(v); err != nil {
		return err
	}

	return nil
}

// decode is a helper function to decode a JSON request body.
func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// handleServiceError provides centralized error handling for all HTTP handlers.
// It logs the internal error and maps it to a user-friendly HTTP response.
func (s *Server) handleServiceError(w http.ResponseWriter, _ *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op))
	log.Error("service error occurred", sl.Err(err))

	var (
		validationErr       *validation.ValidationError
		contractorExistsErr *apperrors.ContractorAlreadyExistsError
		categoryExistsErr   *apperrors.CategoryAlreadyExistsError
		userExistsErr       *apperrors.UserAlreadyExistsError
	)

	switch {
	case errors.As(err, &validationErr):
		s.respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, apperrors.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "invalid request body")
	case errors.Is(err, apperrors.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "resource not found")
	case errors.As(err, &contractorExistsErr):
		s.respondError(w, http.StatusConflict, "contractor with this email already exists")
	case errors.As(err, &categoryExistsErr):
		s.respondError(w, http.StatusConflict, "category with this slug already exists")
	case errors.As(err, &userExistsErr):
		s.respondError(w, http.StatusConflict, "user with this email already exists")
	case errors.Is(err, apperrors.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, apperrors.ErrDisputeResolved):
		s.respondError(w, http.StatusConflict, apperrors.ErrDisputeResolved.Error())
	case errors.Is(err, apperrors.ErrAggregation):
		s.respondError(w, http.StatusInternalServerError, "rating aggregation failed")
	default:
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
