package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/alfazaa/intake/internal/model"
)

var testNow = time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Location: time.UTC, Now: testNow}
}

func testRecord() model.IntakeRecord {
	return model.IntakeRecord{
		ID: "rec-1",
		Intake: model.Intake{
			DriverName:    "Ahmed Ali",
			DriverID:      "12345678901",
			CustomerName:  "Sara <Noor>",
			CustomerPhone: "55512345",
			VehiclePlate:  "4521",
			VehicleColor:  "White",
			VehicleType:   model.VehicleVan,
			DamageNotes: []model.DamageNote{
				{Part: "Hood", Damage: model.DamageDent},
				{Part: "Hood", Damage: model.DamageScratch},
				{Part: "Left Rear Tire", Damage: model.DamageMissing},
			},
			GeneralComments: "Spare tire missing",
		},
		CreatedAt: time.Date(2025, 4, 1, 8, 15, 0, 0, time.UTC),
	}
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing html: %v", err)
	}
	return doc
}

func TestReceipt(t *testing.T) {
	out, err := Receipt(testRecord(), testOptions())
	if err != nil {
		t.Fatalf("Receipt: %v", err)
	}
	doc := parse(t, out)

	if got := doc.Find(".header").Text(); got != "ALFAZAA COMPANY" {
		t.Errorf("header = %q", got)
	}
	if got := doc.Find(".printed-at").Text(); got != "Date/Time: 2025-04-01 09:30" {
		t.Errorf("printed-at = %q", got)
	}
	if !strings.Contains(doc.Find("#customer").Text(), "Customer Name: Sara <Noor>") {
		t.Errorf("customer section = %q", doc.Find("#customer").Text())
	}
	if strings.Contains(out, "<Noor>") {
		t.Error("expected field values to be escaped")
	}
	if got := doc.Find(".damage-note").Length(); got != 3 {
		t.Errorf("expected 3 damage notes, got %d", got)
	}
	if !strings.Contains(doc.Find("#comments").Text(), "Spare tire missing") {
		t.Error("expected general comments section")
	}
	if doc.Find(".copy-label").Length() != 0 {
		t.Error("expected no copy label by default")
	}
	if got := doc.Find("#signature img").Length(); got != 0 {
		t.Errorf("expected blank signature lines, got %d images", got)
	}
	if got := doc.Find(".footer").Last().Text(); got != "Alfazaa Company" {
		t.Errorf("footer = %q", got)
	}
}

func TestReceiptDiagram(t *testing.T) {
	out, err := Receipt(testRecord(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, out)

	if got := doc.Find(".legend-entry").Length(); got != 18 {
		t.Errorf("expected 18 legend entries, got %d", got)
	}
	if got := doc.Find(".legend-column").First().Find(".legend-entry").Length(); got != 9 {
		t.Errorf("expected 9 entries in the first column, got %d", got)
	}
	if got := doc.Find(".legend-entry").First().Text(); got != "1. Front Bumper" {
		t.Errorf("first legend entry = %q", got)
	}
	if got := doc.Find(".part-label").Length(); got != 18 {
		t.Errorf("expected 18 part labels, got %d", got)
	}
	if got := doc.Find("circle.tire").Length(); got != 4 {
		t.Errorf("expected 4 tires, got %d", got)
	}

	// Hood has two notes but is marked once.
	damaged := doc.Find(".part-label.damaged")
	if damaged.Length() != 2 {
		t.Fatalf("expected 2 damaged labels, got %d", damaged.Length())
	}
	want := map[string]bool{"2★": true, "17★": true}
	damaged.Each(func(_ int, s *goquery.Selection) {
		if !want[s.Text()] {
			t.Errorf("unexpected damaged label %q", s.Text())
		}
	})
	if n := strings.Count(doc.Find("svg").Text(), "★"); n != 2 {
		t.Errorf("expected 2 stars in the diagram, got %d", n)
	}
}

func TestReceiptOmitsEmptySections(t *testing.T) {
	rec := testRecord()
	rec.DamageNotes = []model.DamageNote{}
	rec.GeneralComments = ""

	out, err := Receipt(rec, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, out)

	if doc.Find("#damage-notes").Length() != 0 {
		t.Error("expected no damage notes section")
	}
	if doc.Find("#comments").Length() != 0 {
		t.Error("expected no comments section")
	}
	if doc.Find(".part-label.damaged").Length() != 0 {
		t.Error("expected no damaged parts")
	}
	if doc.Find("#signature").Length() != 1 {
		t.Error("expected signature section to remain")
	}
}

func TestReceiptSignatureAndCopyLabel(t *testing.T) {
	rec := testRecord()
	sig := "data:image/png;base64,iVBORw0KGgo="
	rec.Signature = &sig

	opts := testOptions()
	opts.CopyLabel = "Customer copy"
	opts.Company = "Acme Motors"

	out, err := Receipt(rec, opts)
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, out)

	src, ok := doc.Find("#signature img").Attr("src")
	if !ok || src != sig {
		t.Errorf("signature src = %q", src)
	}
	if got := doc.Find(".copy-label").Text(); got != "Customer copy" {
		t.Errorf("copy label = %q", got)
	}
	if got := doc.Find(".header").Text(); got != "ACME MOTORS" {
		t.Errorf("header = %q", got)
	}
}

func TestReceiptIgnoresNonImageSignature(t *testing.T) {
	rec := testRecord()
	sig := "javascript:alert(1)"
	rec.Signature = &sig

	out, err := Receipt(rec, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if parse(t, out).Find("#signature img").Length() != 0 {
		t.Error("expected non-image signature not to be rendered")
	}
}

func TestDiagramSVG(t *testing.T) {
	out, err := DiagramSVG([]model.DamageNote{{Part: "Trunk", Damage: model.DamageBroken}})
	if err != nil {
		t.Fatal(err)
	}
	doc := parse(t, string(out))
	if got := doc.Find(".part-label.damaged").Text(); got != "13★" {
		t.Errorf("damaged label = %q", got)
	}
	if vb, _ := doc.Find("svg").Attr("viewBox"); vb != "-10 -15 240 130" {
		t.Errorf("viewBox = %q", vb)
	}
}

func reportRecords() []model.IntakeRecord {
	first := testRecord()
	second := testRecord()
	second.ID = "rec-2"
	second.DriverName = "Omar"
	second.DamageNotes = nil
	second.CreatedAt = first.CreatedAt.Add(-time.Hour)
	return []model.IntakeRecord{first, second}
}

func TestReport(t *testing.T) {
	out, err := Report(reportRecords(), model.ReportToday, testOptions())
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	doc := parse(t, out)

	if got := doc.Find(".report-title").Text(); got != "Today Report" {
		t.Errorf("title = %q", got)
	}
	rows := doc.Find("tr.record")
	if rows.Length() != 2 {
		t.Fatalf("expected 2 rows, got %d", rows.Length())
	}

	first := rows.Eq(0).Find("td")
	if first.Eq(0).Text() != "1" || first.Eq(1).Text() != "Ahmed Ali" || first.Eq(3).Text() != "4521" {
		t.Errorf("unexpected first row %q", rows.Eq(0).Text())
	}
	if first.Eq(4).Text() != "2025-04-01 08:15" {
		t.Errorf("date = %q", first.Eq(4).Text())
	}
	if got := first.Eq(5).Find(".damage-type").Length(); got != 3 {
		t.Errorf("expected 3 damages in first row, got %d", got)
	}

	second := rows.Eq(1).Find("td")
	if second.Eq(1).Text() != "Omar" {
		t.Errorf("rows out of order: %q", second.Eq(1).Text())
	}
	if got := strings.TrimSpace(second.Eq(5).Text()); got != "None" {
		t.Errorf("expected None for record without damage, got %q", got)
	}

	footer := doc.Find(".footer").Text()
	if !strings.Contains(footer, "Alfazaa Company • 800-8080") || !strings.Contains(footer, "Report generated: 2025-04-01 09:30") {
		t.Errorf("footer = %q", footer)
	}
}

func TestReportTitles(t *testing.T) {
	tests := []struct {
		kind model.ReportKind
		want string
	}{
		{model.ReportToday, "Today Report"},
		{model.ReportPastWeek, "Past Week Report"},
		{model.ReportFull, "Full Report"},
	}
	for _, tt := range tests {
		out, err := Report(reportRecords(), tt.kind, testOptions())
		if err != nil {
			t.Fatal(err)
		}
		if got := parse(t, out).Find(".report-title").Text(); got != tt.want {
			t.Errorf("%s: title = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestReportEmpty(t *testing.T) {
	if _, err := Report(nil, model.ReportFull, testOptions()); !errors.Is(err, ErrReportEmpty) {
		t.Errorf("Report: expected ErrReportEmpty, got %v", err)
	}
	if _, err := ReportXLSX([]model.IntakeRecord{}, model.ReportFull, testOptions()); !errors.Is(err, ErrReportEmpty) {
		t.Errorf("ReportXLSX: expected ErrReportEmpty, got %v", err)
	}
}

func TestReportXLSX(t *testing.T) {
	data, err := ReportXLSX(reportRecords(), model.ReportPastWeek, testOptions())
	if err != nil {
		t.Fatalf("ReportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("opening spreadsheet: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != ReportSheet {
		t.Errorf("sheets = %v", sheets)
	}

	rows, err := f.GetRows(ReportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected title, header and 2 records, got %d rows", len(rows))
	}
	if !strings.Contains(rows[0][0], "Past Week Report") {
		t.Errorf("title row = %q", rows[0][0])
	}
	if rows[1][1] != "Driver" || rows[1][9] != "Damages" {
		t.Errorf("header row = %v", rows[1])
	}
	if rows[2][1] != "Ahmed Ali" || rows[2][9] != "Hood: Dent; Hood: Scratch; Left Rear Tire: Missing" {
		t.Errorf("first record row = %v", rows[2])
	}
	if rows[3][1] != "Omar" || rows[3][9] != "None" {
		t.Errorf("second record row = %v", rows[3])
	}
}
