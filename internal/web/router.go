package web

import (
	"net/http"

	"github.com/alfazaa/intake/internal/api"
	webembed "github.com/alfazaa/intake/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(d *api.Deps) (http.Handler, error) {
	templates, err := LoadTemplates(d.Location())
	if err != nil {
		return nil, err
	}

	s := &Server{Deps: d, Templates: templates}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(d)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /unlock", s.UnlockPage)
	mux.HandleFunc("POST /unlock", s.UnlockSubmit)

	// Unlocked routes.
	mux.Handle("GET /{$}", cookieAuth(http.RedirectHandler("/intake", http.StatusSeeOther)))
	mux.Handle("POST /lock", cookieAuth(http.HandlerFunc(s.Lock)))

	mux.Handle("GET /intake", cookieAuth(http.HandlerFunc(s.IntakePage)))
	mux.Handle("POST /intake/party", cookieAuth(http.HandlerFunc(s.PartySubmit)))
	mux.Handle("POST /intake/notes", cookieAuth(http.HandlerFunc(s.NoteSubmit)))
	mux.Handle("POST /intake/notes/{index}/delete", cookieAuth(http.HandlerFunc(s.NoteDelete)))
	mux.Handle("POST /intake/signature", cookieAuth(http.HandlerFunc(s.SignatureSubmit)))
	mux.Handle("POST /intake/next", cookieAuth(http.HandlerFunc(s.NextSubmit)))
	mux.Handle("POST /intake/back", cookieAuth(http.HandlerFunc(s.BackSubmit)))
	mux.Handle("POST /intake/reset", cookieAuth(http.HandlerFunc(s.ResetSubmit)))
	mux.Handle("POST /intake/finalize", cookieAuth(http.HandlerFunc(s.FinalizeSubmit)))

	mux.Handle("GET /records", cookieAuth(http.HandlerFunc(s.HistoryPage)))
	mux.Handle("GET /records/{id}", cookieAuth(http.HandlerFunc(s.RecordPage)))
	mux.Handle("GET /records/{id}/receipt", cookieAuth(http.HandlerFunc(s.ReceiptPage)))
	mux.Handle("POST /records/{id}/print", cookieAuth(http.HandlerFunc(s.RecordPrint)))
	mux.Handle("GET /reports/{kind}", cookieAuth(http.HandlerFunc(s.ReportPage)))
	mux.Handle("POST /reports/{kind}/print", cookieAuth(http.HandlerFunc(s.ReportPrint)))

	return mux, nil
}
