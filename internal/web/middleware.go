package web

import (
	"net/http"

	"github.com/alfazaa/intake/internal/api"
	"github.com/alfazaa/intake/internal/auth"
)

// CookieAuthMiddleware validates the unlock token from the cookie, checks it
// has not been locked, and adds its claims to the context.
func CookieAuthMiddleware(d *api.Deps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(api.TokenCookie)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/unlock", http.StatusSeeOther)
				return
			}

			database := d.Store.DB()
			if database == nil {
				http.Error(w, "storage is unavailable", http.StatusServiceUnavailable)
				return
			}

			claims, err := auth.Authenticate(r.Context(), database, d.TokenSecret, cookie.Value)
			if err != nil {
				clearAuthCookie(w)
				http.Redirect(w, r, "/unlock", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(api.WithClaims(r.Context(), claims)))
		})
	}
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     api.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
