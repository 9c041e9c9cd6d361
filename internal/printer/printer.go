// Package printer hands rendered documents to the device or file that
// produces the paper or shareable copy.
package printer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/alfazaa/intake/internal/model"
	"github.com/alfazaa/intake/internal/render"
)

// ErrPrint wraps every failure to render or print a document.
var ErrPrint = errors.New("rendering or printing failed")

// Content types of printed documents.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Document is one rendered document ready for printing.
type Document struct {
	Name        string
	ContentType string
	Body        []byte
}

// Printer prints or shares documents.
type Printer interface {
	Print(ctx context.Context, doc Document) error
}

// DefaultCopies is the number of receipt copies printed per intake.
const DefaultCopies = 2

// CopyLabel returns the label printed on copy i (0-based) of n.
// Two copies are the business and the customer copy.
func CopyLabel(i, n int) string {
	switch {
	case n == 1:
		return "Customer copy"
	case n == 2 && i == 0:
		return "Business copy"
	case n == 2 && i == 1:
		return "Customer copy"
	default:
		return "Copy " + strconv.Itoa(i+1) + " of " + strconv.Itoa(n)
	}
}

// PrintReceipt renders the receipt for rec and prints it copies times, each
// copy carrying its label. copies < 1 means DefaultCopies.
func PrintReceipt(ctx context.Context, p Printer, rec model.IntakeRecord, opts render.Options, copies int) error {
	if copies < 1 {
		copies = DefaultCopies
	}

	for i := 0; i < copies; i++ {
		o := opts
		o.CopyLabel = CopyLabel(i, copies)
		html, err := render.Receipt(rec, o)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPrint, err)
		}

		doc := Document{
			Name:        fmt.Sprintf("receipt_%s_%d.html", rec.ID, i+1),
			ContentType: ContentTypeHTML,
			Body:        []byte(html),
		}
		if err := p.Print(ctx, doc); err != nil {
			return fmt.Errorf("%w: printing %s: %w", ErrPrint, doc.Name, err)
		}
	}

	slog.Info("receipt printed", "id", rec.ID, "copies", copies)
	return nil
}

// ReportDocument renders the report of the given kind as HTML, or as a
// spreadsheet when xlsx is set. An empty record set yields
// render.ErrReportEmpty, not ErrPrint.
func ReportDocument(records []model.IntakeRecord, kind model.ReportKind, opts render.Options, xlsx bool) (Document, error) {
	stamp := opts.Now.UnixMilli()
	if xlsx {
		data, err := render.ReportXLSX(records, kind, opts)
		if err != nil {
			return Document{}, reportErr(err)
		}
		return Document{
			Name:        fmt.Sprintf("alfazaa_report_%s_%d.xlsx", kind, stamp),
			ContentType: ContentTypeXLSX,
			Body:        data,
		}, nil
	}

	html, err := render.Report(records, kind, opts)
	if err != nil {
		return Document{}, reportErr(err)
	}
	return Document{
		Name:        fmt.Sprintf("alfazaa_report_%s_%d.html", kind, stamp),
		ContentType: ContentTypeHTML,
		Body:        []byte(html),
	}, nil
}

func reportErr(err error) error {
	if errors.Is(err, render.ErrReportEmpty) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPrint, err)
}

// PrintReport renders a report and prints it once.
func PrintReport(ctx context.Context, p Printer, records []model.IntakeRecord, kind model.ReportKind, opts render.Options, xlsx bool) (Document, error) {
	doc, err := ReportDocument(records, kind, opts, xlsx)
	if err != nil {
		return Document{}, err
	}
	if err := p.Print(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("%w: printing %s: %w", ErrPrint, doc.Name, err)
	}

	slog.Info("report printed", "kind", kind, "records", len(records), "document", doc.Name)
	return doc, nil
}
