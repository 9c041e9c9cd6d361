package api

import (
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d *Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Deps: d}
	draftHandler := &DraftHandler{Deps: d}
	recordsHandler := &RecordsHandler{Deps: d}

	authMW := AuthMiddleware(d)

	// Public.
	mux.HandleFunc("POST /api/unlock", authHandler.Unlock)
	mux.HandleFunc("GET /api/catalog", Catalog)

	// Unlocked routes.
	mux.Handle("POST /api/lock", authMW(http.HandlerFunc(authHandler.Lock)))

	// Wizard.
	mux.Handle("GET /api/draft", authMW(http.HandlerFunc(draftHandler.Get)))
	mux.Handle("PUT /api/draft/fields/{field}", authMW(http.HandlerFunc(draftHandler.UpdateField)))
	mux.Handle("POST /api/draft/notes", authMW(http.HandlerFunc(draftHandler.AddNote)))
	mux.Handle("DELETE /api/draft/notes/{index}", authMW(http.HandlerFunc(draftHandler.RemoveNote)))
	mux.Handle("PUT /api/draft/signature", authMW(http.HandlerFunc(draftHandler.SetSignature)))
	mux.Handle("POST /api/draft/next", authMW(http.HandlerFunc(draftHandler.Next)))
	mux.Handle("POST /api/draft/back", authMW(http.HandlerFunc(draftHandler.Back)))
	mux.Handle("POST /api/draft/reset", authMW(http.HandlerFunc(draftHandler.Reset)))
	mux.Handle("POST /api/draft/finalize", authMW(http.HandlerFunc(draftHandler.Finalize)))

	// History.
	mux.Handle("GET /api/records", authMW(http.HandlerFunc(recordsHandler.List)))
	mux.Handle("GET /api/records/{id}", authMW(http.HandlerFunc(recordsHandler.Get)))
	mux.Handle("GET /api/records/{id}/receipt", authMW(http.HandlerFunc(recordsHandler.Receipt)))
	mux.Handle("POST /api/records/{id}/print", authMW(http.HandlerFunc(recordsHandler.PrintReceipt)))
	mux.Handle("GET /api/reports/{kind}", authMW(http.HandlerFunc(recordsHandler.Report)))
	mux.Handle("POST /api/reports/{kind}/print", authMW(http.HandlerFunc(recordsHandler.PrintReport)))

	return mux
}
