package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alfazaa/intake/internal/intake"
	"github.com/alfazaa/intake/internal/printer"
	"github.com/alfazaa/intake/internal/render"
	"github.com/alfazaa/intake/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// ErrorStatus maps a domain error to an HTTP status and a message safe to show.
func ErrorStatus(err error) (int, string) {
	var verr *intake.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "the intake has invalid fields"
	case errors.Is(err, intake.ErrWrongStep):
		return http.StatusConflict, "not allowed at this step of the intake"
	case errors.Is(err, store.ErrRecordNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, render.ErrReportEmpty):
		return http.StatusNotFound, "No records found for this report."
	case errors.Is(err, store.ErrStorageUnavailable), errors.Is(err, store.ErrNotInitialized):
		return http.StatusServiceUnavailable, "storage is unavailable"
	case errors.Is(err, store.ErrPersistence):
		return http.StatusInternalServerError, "saving failed, please try again"
	case errors.Is(err, printer.ErrPrint):
		return http.StatusBadGateway, "printing failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeError logs err and writes the mapped JSON error. Validation errors
// carry their field messages.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	var verr *intake.ValidationError
	if errors.As(err, &verr) {
		jsonResponse(w, status, validationResponse{Error: msg, Errors: verr.Errors})
		return
	}
	jsonError(w, status, msg)
}

type validationResponse struct {
	Error  string        `json:"error"`
	Errors intake.Errors `json:"errors"`
}
