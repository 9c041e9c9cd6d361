package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alfazaa/intake/internal/api"
	"github.com/alfazaa/intake/internal/auth"
)

// UnlockPage handles GET /unlock.
func (s *Server) UnlockPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "unlock.html", s.page(r, "Unlock"))
}

// UnlockSubmit handles POST /unlock.
func (s *Server) UnlockSubmit(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	if code == "" {
		data := s.page(r, "Unlock")
		data.Error = "Enter the unlock code."
		s.Templates.Render(w, "unlock.html", data)
		return
	}

	token, claims, err := auth.Unlock(s.TokenSecret, s.UnlockHash, code, r.FormValue("device"))
	if err != nil {
		data := s.page(r, "Unlock")
		data.Error = "Wrong unlock code."
		if !errors.Is(err, auth.ErrBadCode) {
			slog.Error("failed to issue unlock token", "error", err)
			data.Error = "Unlocking failed."
		}
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "unlock.html", data)
		return
	}

	slog.Info("device unlocked", "device", claims.Device, "session", claims.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     api.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// Lock handles POST /lock. The token is revoked and its draft discarded.
func (s *Server) Lock(w http.ResponseWriter, r *http.Request) {
	claims := api.GetClaims(r.Context())
	if err := auth.Lock(r.Context(), s.Store.DB(), claims); err != nil {
		slog.Error("failed to lock", "error", err)
	}
	s.Sessions.Drop(claims.ID)
	clearAuthCookie(w)
	http.Redirect(w, r, "/unlock", http.StatusSeeOther)
}
