package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/localtrades/contractor-directory/internal/domain"
	"github.com/localtrades/contractor-directory/internal/identity"
	"github.com/localtrades/contractor-directory/pkg/logger/sl"
)

const stateCookie = "oauth_state"

// authLogin redirects the browser to the provider's consent page. The
// anti-forgery state is stored in a short-lived cookie and checked on the
// callback.
func (s *Server) authLogin(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.providers.Lookup(identity.Provider(chi.URLParam(r, "provider")))
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown sign-in provider")
		return
	}

	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/api/auth",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (s *Server) authCallback(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.authCallback"

	provider, ok := s.providers.Lookup(identity.Provider(chi.URLParam(r, "provider")))
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown sign-in provider")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		s.respondError(w, http.StatusBadRequest, "state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		s.respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	profile, err := provider.Exchange(r.Context(), code)
	if err != nil {
		s.log.Error("code exchange failed", sl.Err(err))
		s.respondError(w, http.StatusBadGateway, "sign-in provider rejected the request")
		return
	}

	user, session, err := s.users.FindOrCreateFromProfile(r.Context(), profile)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]interface{}{
		"user":    userView(user),
		"session": session,
	})
}

// userView is the sign-in response shape; it never exposes provider ids.
func userView(user *domain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"avatar":   user.Avatar,
		"verified": user.Verified,
	}
}
