package render

import (
	"bytes"
	"fmt"

	"github.com/alfazaa/intake/internal/model"
)

type reportRow struct {
	DriverName   string
	CustomerName string
	VehiclePlate string
	CreatedAt    string
	DamageNotes  []model.DamageNote
}

type reportData struct {
	Company     string
	Phone       string
	Title       string
	Kind        model.ReportKind
	GeneratedAt string
	Rows        []reportRow
}

func newReport(records []model.IntakeRecord, kind model.ReportKind, opts Options) reportData {
	data := reportData{
		Company:     opts.Company,
		Phone:       opts.Phone,
		Title:       kind.Title(),
		Kind:        kind,
		GeneratedAt: opts.format(opts.Now),
		Rows:        make([]reportRow, 0, len(records)),
	}
	for _, r := range records {
		data.Rows = append(data.Rows, reportRow{
			DriverName:   r.DriverName,
			CustomerName: r.CustomerName,
			VehiclePlate: r.VehiclePlate,
			CreatedAt:    opts.format(r.CreatedAt),
			DamageNotes:  r.DamageNotes,
		})
	}
	return data
}

// Report renders the aggregate report over records, one row per record in the
// given order. Selecting the records for kind is the caller's job; kind only
// sets the title. Zero records yield ErrReportEmpty.
func Report(records []model.IntakeRecord, kind model.ReportKind, opts Options) (string, error) {
	if len(records) == 0 {
		return "", ErrReportEmpty
	}
	opts = opts.withDefaults()

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "report.html", newReport(records, kind, opts)); err != nil {
		return "", fmt.Errorf("rendering %s report: %w", kind, err)
	}
	return buf.String(), nil
}
