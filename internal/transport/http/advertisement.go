package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/localtrades/contractor-directory/internal/domain"
)

func (s *Server) createAdvertisement(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createAdvertisement"

	var req createAdvertisementRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	ad := domain.Advertisement{
		ContractorID: req.ContractorID,
		Type:         domain.AdvertisementType(req.Type),
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		TargetURL:    req.TargetURL,
		Categories:   req.Categories,
		Locations:    req.Locations,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Budget:       req.Budget,
	}

	created, err := s.advertisements.CreateAdvertisement(r.Context(), ad)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Advertisement{"advertisement": created})
}

func (s *Server) getAdvertisement(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getAdvertisement"

	ad, err := s.advertisements.GetAdvertisement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Advertisement{"advertisement": ad})
}

func (s *Server) listActiveAdvertisements(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listActiveAdvertisements"

	adType := domain.AdvertisementType(r.URL.Query().Get("type"))
	if adType != domain.AdTypeFeaturedListing && adType != domain.AdTypeBanner {
		s.respondError(w, http.StatusBadRequest, "parameter 'type' must be 'featured_listing' or 'banner'")
		return
	}

	ads, err := s.advertisements.ListActive(r.Context(), adType)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string][]domain.Advertisement{"advertisements": ads})
}

func (s *Server) trackImpression(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.trackImpression"

	if err := s.advertisements.TrackImpression(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "tracked"})
}

func (s *Server) trackClick(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.trackClick"

	if err := s.advertisements.TrackClick(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "tracked"})
}
