package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alfazaa/intake/internal/api"
	"github.com/alfazaa/intake/internal/imaging"
	"github.com/alfazaa/intake/internal/intake"
	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/printer"
	"github.com/alfazaa/intake/internal/render"
)

// partyFields are the form fields of the first wizard step, in form order.
var partyFields = []intake.Field{
	intake.FieldDriverName,
	intake.FieldDriverID,
	intake.FieldCustomerName,
	intake.FieldCustomerPhone,
	intake.FieldVehiclePlate,
	intake.FieldVehicleColor,
	intake.FieldVehicleType,
}

// hitRegion is one tappable part on the interactive diagram.
type hitRegion struct {
	Number  int
	Name    string
	Style   template.CSS
	Tire    bool
	Damaged bool
}

func hitRegions(notes []model.DamageNote) []hitRegion {
	parts := model.Parts()
	out := make([]hitRegion, len(parts))
	for i, p := range parts {
		out[i] = hitRegion{
			Number: i + 1,
			Name:   p.Name,
			Style: template.CSS(fmt.Sprintf("left:%g%%;top:%g%%;width:%g%%;height:%g%%",
				p.Screen.X, p.Screen.Y, p.Screen.Width, p.Screen.Height)),
			Tire:    p.Tire,
			Damaged: model.HasDamage(notes, p.Name),
		}
	}
	return out
}

// fieldErrors keys errs by form field name.
func fieldErrors(errs intake.Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, msg := range errs {
		out[string(field)] = msg
	}
	return out
}

func (s *Server) session(r *http.Request) *intake.Session {
	return s.Sessions.Get(api.GetClaims(r.Context()).ID)
}

type partyPage struct {
	PageData
	Fields       model.Intake
	Errors       map[string]string
	VehicleTypes []model.VehicleType
	Last         *model.IntakeRecord
}

type damagePage struct {
	PageData
	Fields      model.Intake
	Regions     []hitRegion
	DamageKinds []model.DamageKind
	AspectRatio float64
}

type reviewPage struct {
	PageData
	Fields    model.Intake
	Diagram   template.HTML
	Signature template.URL
}

// IntakePage handles GET /intake. It shows the current wizard step.
func (s *Server) IntakePage(w http.ResponseWriter, r *http.Request) {
	s.renderStep(w, r, http.StatusOK, nil, "")
}

// renderStep shows the session's current step with the given field errors and message.
func (s *Server) renderStep(w http.ResponseWriter, r *http.Request, status int, errs intake.Errors, msg string) {
	sess := s.session(r)
	fields, step := sess.Snapshot()

	switch step {
	case intake.StepPartyInfo:
		data := partyPage{
			PageData:     s.page(r, "Party & vehicle"),
			Fields:       fields,
			Errors:       fieldErrors(errs),
			VehicleTypes: model.VehicleTypes,
			Last:         sess.LastRecord(),
		}
		data.Error = msg
		s.Templates.RenderStatus(w, status, "party.html", data)

	case intake.StepDamage:
		data := damagePage{
			PageData:    s.page(r, "Damage"),
			Fields:      fields,
			Regions:     hitRegions(fields.DamageNotes),
			DamageKinds: model.DamageKinds,
			AspectRatio: model.DiagramAspectRatio,
		}
		data.Error = msg
		s.Templates.RenderStatus(w, status, "damage.html", data)

	default:
		diagram, err := render.DiagramSVG(fields.DamageNotes)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		data := reviewPage{
			PageData:  s.page(r, "Review"),
			Fields:    fields,
			Diagram:   diagram,
			Signature: render.SignatureURL(fields.Signature),
		}
		data.Error = msg
		s.Templates.RenderStatus(w, status, "review.html", data)
	}
}

// PartySubmit handles POST /intake/party: it stores the first step's fields
// and moves on when they validate.
func (s *Server) PartySubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	if sess.Step() != intake.StepPartyInfo {
		http.Redirect(w, r, "/intake", http.StatusSeeOther)
		return
	}

	err := sess.Do(func(d *intake.Draft) error {
		for _, field := range partyFields {
			if err := d.UpdateField(field, r.FormValue(string(field))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.renderStep(w, r, http.StatusBadRequest, nil, err.Error())
		return
	}

	errs, err := sess.Next()
	if err != nil {
		http.Redirect(w, r, "/intake", http.StatusSeeOther)
		return
	}
	if !errs.Valid() {
		s.renderStep(w, r, http.StatusUnprocessableEntity, errs, "Please correct the highlighted fields.")
		return
	}
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// NoteSubmit handles POST /intake/notes.
func (s *Server) NoteSubmit(w http.ResponseWriter, r *http.Request) {
	part := r.FormValue("part")
	kind, err := model.ParseDamageKind(r.FormValue("damage"))
	if err != nil || !model.IsPart(part) {
		s.renderStep(w, r, http.StatusBadRequest, nil, "Select a part and a damage type.")
		return
	}

	note := model.DamageNote{Part: part, Damage: kind, Timestamp: model.FormatTime(s.Time())}
	s.session(r).Do(func(d *intake.Draft) error {
		d.AddDamageNote(note)
		return nil
	})
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// NoteDelete handles POST /intake/notes/{index}/delete.
func (s *Server) NoteDelete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	s.session(r).Do(func(d *intake.Draft) error {
		d.RemoveDamageNote(index)
		return nil
	})
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// NextSubmit handles POST /intake/next.
func (s *Server) NextSubmit(w http.ResponseWriter, r *http.Request) {
	errs, err := s.session(r).Next()
	if err == nil && !errs.Valid() {
		s.renderStep(w, r, http.StatusUnprocessableEntity, errs, "Please correct the highlighted fields.")
		return
	}
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// BackSubmit handles POST /intake/back.
func (s *Server) BackSubmit(w http.ResponseWriter, r *http.Request) {
	s.session(r).Back()
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// ResetSubmit handles POST /intake/reset.
func (s *Server) ResetSubmit(w http.ResponseWriter, r *http.Request) {
	s.session(r).Abandon()
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// SignatureSubmit handles POST /intake/signature. It takes an uploaded
// "image", a "signature" data URI from the drawing pad, or "clear".
func (s *Server) SignatureSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxInputSize+(64<<10))
	if err := r.ParseMultipartForm(imaging.MaxInputSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.renderStep(w, r, http.StatusBadRequest, nil, "Signature image is too large.")
		return
	}

	var sig *string
	switch {
	case r.FormValue("clear") != "":
	case r.FormValue("signature") != "":
		uri, err := imaging.SignatureFromDataURI(r.FormValue("signature"))
		if err != nil {
			s.renderStep(w, r, http.StatusBadRequest, nil, "Signature must be a PNG or JPEG image.")
			return
		}
		sig = &uri
	default:
		file, _, err := r.FormFile("image")
		if err != nil {
			s.renderStep(w, r, http.StatusBadRequest, nil, "Choose a signature image.")
			return
		}
		defer file.Close()
		uri, err := imaging.Signature(file)
		if err != nil {
			s.renderStep(w, r, http.StatusBadRequest, nil, "Signature must be a PNG or JPEG image.")
			return
		}
		sig = &uri
	}

	s.session(r).Do(func(d *intake.Draft) error {
		d.SetSignature(sig)
		return nil
	})
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// FinalizeSubmit handles POST /intake/finalize. The comments from the review
// form are stored, the record saved, and its receipt printed when asked.
func (s *Server) FinalizeSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	sess.Do(func(d *intake.Draft) error {
		return d.UpdateField(intake.FieldGeneralComments, r.FormValue(string(intake.FieldGeneralComments)))
	})

	rec, err := sess.Finalize(r.Context(), s.Store)
	if errors.Is(err, intake.ErrWrongStep) {
		http.Redirect(w, r, "/intake", http.StatusSeeOther)
		return
	}
	if err != nil {
		status, msg := api.ErrorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("failed to save intake", "error", err)
		}
		s.renderStep(w, r, status, nil, msg)
		return
	}
	slog.Info("intake saved", "id", rec.ID, "plate", rec.VehiclePlate, "notes", len(rec.DamageNotes))

	q := url.Values{"saved": {"1"}}
	if r.FormValue("print") != "" {
		if err := printer.PrintReceipt(r.Context(), s.Printer, *rec, s.RenderOptions(), s.Copies); err != nil {
			slog.Error("failed to print receipt", "id", rec.ID, "error", err)
			q.Set("print", "failed")
		} else {
			q.Set("print", "ok")
		}
	}
	http.Redirect(w, r, "/records/"+url.PathEscape(rec.ID)+"?"+q.Encode(), http.StatusSeeOther)
}
