package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alfazaa/intake/internal/imaging"
	"github.com/alfazaa/intake/internal/intake"
	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/printer"
)

// DraftHandler handles the intake wizard of the unlocked device.
type DraftHandler struct {
	*Deps
}

type draftResponse struct {
	Fields    model.Intake  `json:"fields"`
	Step      string        `json:"step"`
	Timestamp string        `json:"timestamp"`
	Errors    intake.Errors `json:"errors,omitempty"`
}

func (h *DraftHandler) session(r *http.Request) *intake.Session {
	return h.Sessions.Get(GetClaims(r.Context()).ID)
}

func (h *DraftHandler) respond(w http.ResponseWriter, status int, sess *intake.Session, errs intake.Errors) {
	var ts string
	sess.Do(func(d *intake.Draft) error {
		ts = model.FormatTime(d.Timestamp())
		return nil
	})
	fields, step := sess.Snapshot()
	jsonResponse(w, status, draftResponse{Fields: fields, Step: step.String(), Timestamp: ts, Errors: errs})
}

// Get handles GET /api/draft.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.session(r), nil)
}

type fieldRequest struct {
	Value string `json:"value"`
}

// UpdateField handles PUT /api/draft/fields/{field}.
func (h *DraftHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	field, err := intake.ParseField(r.PathValue("field"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req fieldRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess := h.session(r)
	if err := sess.Do(func(d *intake.Draft) error { return d.UpdateField(field, req.Value) }); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, http.StatusOK, sess, nil)
}

type noteRequest struct {
	Part   string `json:"part"`
	Damage string `json:"damage"`
	// Tap position in percent of the diagram, used when Part is empty.
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// AddNote handles POST /api/draft/notes. The part is given by name or by the
// tap position on the diagram.
func (h *DraftHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Part == "" && req.X != nil && req.Y != nil {
		part, ok := model.PartAt(*req.X, *req.Y)
		if !ok {
			jsonError(w, http.StatusBadRequest, "no part at this position")
			return
		}
		req.Part = part.Name
	}
	if !model.IsPart(req.Part) {
		jsonError(w, http.StatusBadRequest, "unknown part: "+req.Part)
		return
	}
	kind, err := model.ParseDamageKind(req.Damage)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	note := model.DamageNote{Part: req.Part, Damage: kind, Timestamp: model.FormatTime(h.Time())}
	sess := h.session(r)
	sess.Do(func(d *intake.Draft) error {
		d.AddDamageNote(note)
		return nil
	})
	h.respond(w, http.StatusCreated, sess, nil)
}

// RemoveNote handles DELETE /api/draft/notes/{index}. An index past the end is ignored.
func (h *DraftHandler) RemoveNote(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid index")
		return
	}

	sess := h.session(r)
	sess.Do(func(d *intake.Draft) error {
		d.RemoveDamageNote(index)
		return nil
	})
	h.respond(w, http.StatusOK, sess, nil)
}

type signatureRequest struct {
	Signature *string `json:"signature"`
}

// SetSignature handles PUT /api/draft/signature. It accepts a multipart
// "image" upload or a JSON body with a data URI; a JSON null clears it.
func (h *DraftHandler) SetSignature(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxInputSize+(64<<10))

	var sig *string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(imaging.MaxInputSize); err != nil {
			jsonError(w, http.StatusBadRequest, "file too large")
			return
		}
		file, _, err := r.FormFile("image")
		if err != nil {
			jsonError(w, http.StatusBadRequest, "image required")
			return
		}
		defer file.Close()

		uri, err := imaging.Signature(file)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		sig = &uri
	} else {
		var req signatureRequest
		if err := decodeJSON(r, &req); err != nil {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Signature != nil {
			uri, err := imaging.SignatureFromDataURI(*req.Signature)
			if err != nil {
				jsonError(w, http.StatusBadRequest, err.Error())
				return
			}
			sig = &uri
		}
	}

	sess := h.session(r)
	sess.Do(func(d *intake.Draft) error {
		d.SetSignature(sig)
		return nil
	})
	h.respond(w, http.StatusOK, sess, nil)
}

// Next handles POST /api/draft/next. Validation failures answer 422 with the
// field errors and leave the step unchanged.
func (h *DraftHandler) Next(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	errs, err := sess.Next()
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !errs.Valid() {
		h.respond(w, http.StatusUnprocessableEntity, sess, errs)
		return
	}
	h.respond(w, http.StatusOK, sess, nil)
}

// Back handles POST /api/draft/back.
func (h *DraftHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	sess.Back()
	h.respond(w, http.StatusOK, sess, nil)
}

// Reset handles POST /api/draft/reset, abandoning the intake in progress.
func (h *DraftHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	sess.Abandon()
	h.respond(w, http.StatusOK, sess, nil)
}

type finalizeResponse struct {
	Record     *model.IntakeRecord `json:"record"`
	Printed    bool                `json:"printed"`
	PrintError string              `json:"printError,omitempty"`
}

// Finalize handles POST /api/draft/finalize. The record is saved, then its
// receipt printed unless print=false. A print failure does not undo the save.
func (h *DraftHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	rec, err := sess.Finalize(r.Context(), h.Store)
	if err != nil {
		var verr *intake.ValidationError
		if !errors.As(err, &verr) {
			slog.Warn("finalize failed", "error", err)
		}
		writeError(w, r, err)
		return
	}
	slog.Info("intake saved", "id", rec.ID, "plate", rec.VehiclePlate, "notes", len(rec.DamageNotes))

	resp := finalizeResponse{Record: rec}
	if r.URL.Query().Get("print") != "false" {
		if err := printer.PrintReceipt(r.Context(), h.Printer, *rec, h.RenderOptions(), h.Copies); err != nil {
			slog.Error("failed to print receipt", "id", rec.ID, "error", err)
			resp.PrintError = "printing failed"
		} else {
			resp.Printed = true
		}
	}
	jsonResponse(w, http.StatusCreated, resp)
}
