package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alfazaa/intake/internal/history"
	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/printer"
	"github.com/alfazaa/intake/internal/render"
)

// RecordsHandler handles the intake history, receipts and reports.
type RecordsHandler struct {
	*Deps
}

// ParseFilter reads the search, from and to query parameters. Date-only
// bounds are whole days in loc.
func ParseFilter(r *http.Request, loc *time.Location) (history.Filter, error) {
	q := r.URL.Query()
	from, err := history.ParseDateBound(q.Get("from"), false, loc)
	if err != nil {
		return history.Filter{}, fmt.Errorf("from: %w", err)
	}
	to, err := history.ParseDateBound(q.Get("to"), true, loc)
	if err != nil {
		return history.Filter{}, fmt.Errorf("to: %w", err)
	}
	return history.Filter{Search: q.Get("search"), From: from, To: to}, nil
}

type listResponse struct {
	Records []model.IntakeRecord `json:"records"`
	Total   int                  `json:"total"`
}

// List handles GET /api/records.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r, h.Location())
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	all, err := h.Store.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, listResponse{Records: history.Apply(all, filter), Total: len(all)})
}

// Get handles GET /api/records/{id}.
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}

// Receipt handles GET /api/records/{id}/receipt.
func (h *RecordsHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := h.RenderOptions()
	opts.CopyLabel = r.URL.Query().Get("copy")
	html, err := render.Receipt(*rec, opts)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", printer.ErrPrint, err))
		return
	}
	WriteDocument(w, printer.Document{ContentType: printer.ContentTypeHTML, Body: []byte(html)}, false)
}

// PrintReceipt handles POST /api/records/{id}/print.
func (h *RecordsHandler) PrintReceipt(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := printer.PrintReceipt(r.Context(), h.Printer, *rec, h.RenderOptions(), h.Copies); err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"printed": true, "copies": h.Copies})
}

// reportRecords loads the records for the report named in the path.
func (h *RecordsHandler) reportRecords(r *http.Request) (model.ReportKind, []model.IntakeRecord, error) {
	kind, err := model.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		return "", nil, err
	}
	records, err := h.ReportRecords(r.Context(), kind)
	return kind, records, err
}

// Report handles GET /api/reports/{kind}. format=xlsx returns a spreadsheet.
func (h *RecordsHandler) Report(w http.ResponseWriter, r *http.Request) {
	kind, records, err := h.reportRecords(r)
	if kind == "" {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	xlsx := r.URL.Query().Get("format") == "xlsx"
	doc, err := printer.ReportDocument(records, kind, h.RenderOptions(), xlsx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	WriteDocument(w, doc, xlsx)
}

// PrintReport handles POST /api/reports/{kind}/print.
func (h *RecordsHandler) PrintReport(w http.ResponseWriter, r *http.Request) {
	kind, records, err := h.reportRecords(r)
	if kind == "" {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	xlsx := r.URL.Query().Get("format") == "xlsx"
	doc, err := printer.PrintReport(r.Context(), h.Printer, records, kind, h.RenderOptions(), xlsx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{"document": doc.Name, "records": len(records)})
}

// writeDocument writes a rendered document, as a download when attach is set.
func WriteDocument(w http.ResponseWriter, doc printer.Document, attach bool) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if attach {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	}
	if _, err := w.Write(doc.Body); err != nil {
		slog.Error("failed to write document", "document", doc.Name, "error", err)
	}
}
