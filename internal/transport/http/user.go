package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUser"

	user, err := s.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{"user": userView(user)})
}
