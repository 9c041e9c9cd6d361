package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alfazaa/intake/internal/model"
)

// ReportSheet is the worksheet holding report rows.
const ReportSheet = "Report"

var reportHeaders = []string{
	"#", "Driver", "Driver ID", "Customer", "Phone", "Plate", "Type", "Color", "Date", "Damages", "Comments",
}

// ReportXLSX renders the aggregate report as a spreadsheet: a title row, a
// header row, then one row per record in the given order. Zero records yield
// ErrReportEmpty.
func ReportXLSX(records []model.IntakeRecord, kind model.ReportKind, opts Options) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrReportEmpty
	}
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	f.SetCellValue(ReportSheet, "A1", fmt.Sprintf("%s - %s (generated %s)", opts.Company, kind.Title(), opts.format(opts.Now)))

	for i, h := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(ReportSheet, cell, h)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F7F9F0"}, Pattern: 1},
	})
	if err == nil {
		f.SetRowStyle(ReportSheet, 2, 2, headerStyle)
	}

	for i, r := range records {
		row := i + 3
		values := []any{
			i + 1,
			r.DriverName,
			r.DriverID,
			r.CustomerName,
			r.CustomerPhone,
			r.VehiclePlate,
			string(r.VehicleType),
			r.VehicleColor,
			opts.format(r.CreatedAt),
			damageSummary(r.DamageNotes),
			r.GeneralComments,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(ReportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	f.SetColWidth(ReportSheet, "A", "A", 5)
	f.SetColWidth(ReportSheet, "B", "I", 16)
	f.SetColWidth(ReportSheet, "J", "K", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func damageSummary(notes []model.DamageNote) string {
	if len(notes) == 0 {
		return "None"
	}
	parts := make([]string, len(notes))
	for i, n := range notes {
		parts[i] = n.Part + ": " + string(n.Damage)
	}
	return strings.Join(parts, "; ")
}
