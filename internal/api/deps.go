package api

import (
	"context"
	"time"

	"github.com/alfazaa/intake/internal/history"
	"github.com/alfazaa/intake/internal/intake"
	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/printer"
	"github.com/alfazaa/intake/internal/render"
	"github.com/alfazaa/intake/internal/store"
)

// Deps are the dependencies shared by the API and the web pages.
type Deps struct {
	Store       *store.Store
	Sessions    *intake.Sessions
	Printer     printer.Printer
	Render      render.Options
	Copies      int
	TokenSecret string
	UnlockHash  string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Time returns the current time.
func (d *Deps) Time() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Location returns the zone used for date filters and documents.
func (d *Deps) Location() *time.Location {
	if d.Render.Location != nil {
		return d.Render.Location
	}
	return time.Local
}

// RenderOptions returns the document options stamped with the current time.
func (d *Deps) RenderOptions() render.Options {
	o := d.Render
	o.Location = d.Location()
	o.Now = d.Time()
	return o
}

// ReportRecords returns the stored records inside the window of kind.
func (d *Deps) ReportRecords(ctx context.Context, kind model.ReportKind) ([]model.IntakeRecord, error) {
	all, err := d.Store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return history.ForReport(all, kind, d.Time().In(d.Location())), nil
}
