package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alfazaa/intake/internal/api"
	"github.com/alfazaa/intake/internal/history"
	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/printer"
	"github.com/alfazaa/intake/internal/render"
)

type historyPage struct {
	PageData
	Records []model.IntakeRecord
	Total   int
	Search  string
	From    string
	To      string
	Kinds   []model.ReportKind
}

// HistoryPage handles GET /records.
func (s *Server) HistoryPage(w http.ResponseWriter, r *http.Request) {
	s.renderHistory(w, r, http.StatusOK, "", "")
}

func (s *Server) renderHistory(w http.ResponseWriter, r *http.Request, status int, errMsg, success string) {
	q := r.URL.Query()
	data := historyPage{
		PageData: s.page(r, "History"),
		Search:   q.Get("search"),
		From:     q.Get("from"),
		To:       q.Get("to"),
		Kinds:    []model.ReportKind{model.ReportToday, model.ReportPastWeek, model.ReportFull},
	}
	data.Error = errMsg
	data.Success = success

	all, err := s.Store.GetAll(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data.Total = len(all)

	filter, err := api.ParseFilter(r, s.Location())
	if err != nil {
		data.Error = "Dates must look like " + history.DateLayout + "."
		filter = history.Filter{Search: data.Search}
	}
	data.Records = history.Apply(all, filter)

	s.Templates.RenderStatus(w, status, "history.html", data)
}

type recordPage struct {
	PageData
	Record    *model.IntakeRecord
	Diagram   template.HTML
	Signature template.URL
}

// RecordPage handles GET /records/{id}. It doubles as the confirmation shown
// after an intake is saved.
func (s *Server) RecordPage(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	diagram, err := render.DiagramSVG(rec.DamageNotes)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := recordPage{
		PageData:  s.page(r, "Intake "+rec.VehiclePlate),
		Record:    rec,
		Diagram:   diagram,
		Signature: render.SignatureURL(rec.Signature),
	}
	q := r.URL.Query()
	if q.Get("saved") != "" {
		data.Success = "Intake saved."
	}
	switch q.Get("print") {
	case "ok":
		data.Success += fmt.Sprintf(" Receipt sent to the printer (%d copies).", s.Copies)
	case "failed":
		data.Error = "Printing failed. The intake is saved; try printing again."
	}
	s.Templates.Render(w, "record.html", data)
}

// ReceiptPage handles GET /records/{id}/receipt.
func (s *Server) ReceiptPage(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts := s.RenderOptions()
	opts.CopyLabel = r.URL.Query().Get("copy")
	html, err := render.Receipt(*rec, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	api.WriteDocument(w, printer.Document{ContentType: printer.ContentTypeHTML, Body: []byte(html)}, false)
}

// RecordPrint handles POST /records/{id}/print.
func (s *Server) RecordPrint(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	result := "ok"
	if err := printer.PrintReceipt(r.Context(), s.Printer, *rec, s.RenderOptions(), s.Copies); err != nil {
		slog.Error("failed to print receipt", "id", rec.ID, "error", err)
		result = "failed"
	}
	http.Redirect(w, r, "/records/"+url.PathEscape(rec.ID)+"?print="+result, http.StatusSeeOther)
}

// ReportPage handles GET /reports/{kind}. format=xlsx downloads a spreadsheet.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := s.ReportRecords(r.Context(), kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	xlsx := r.URL.Query().Get("format") == "xlsx"
	doc, err := printer.ReportDocument(records, kind, s.RenderOptions(), xlsx)
	if errors.Is(err, render.ErrReportEmpty) {
		_, msg := api.ErrorStatus(err)
		s.renderHistory(w, r, http.StatusNotFound, msg, "")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	api.WriteDocument(w, doc, xlsx)
}

// ReportPrint handles POST /reports/{kind}/print.
func (s *Server) ReportPrint(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := s.ReportRecords(r.Context(), kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	_, err = printer.PrintReport(r.Context(), s.Printer, records, kind, s.RenderOptions(), false)
	switch {
	case errors.Is(err, render.ErrReportEmpty):
		_, msg := api.ErrorStatus(err)
		s.renderHistory(w, r, http.StatusNotFound, msg, "")
	case err != nil:
		slog.Error("failed to print report", "kind", kind, "error", err)
		s.renderHistory(w, r, http.StatusBadGateway, "Printing the report failed.", "")
	default:
		s.renderHistory(w, r, http.StatusOK, "", kind.Title()+" sent to the printer.")
	}
}
