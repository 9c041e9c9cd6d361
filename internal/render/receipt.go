package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alfazaa/intake/internal/model"
)

type receiptData struct {
	Company   string
	PrintedAt string
	CopyLabel string
	Record    model.IntakeRecord
	CreatedAt string
	Diagram   diagramData
	Signature template.URL
}

// Receipt renders the printable receipt for one record.
func Receipt(rec model.IntakeRecord, opts Options) (string, error) {
	opts = opts.withDefaults()

	data := receiptData{
		Company:   opts.Company,
		PrintedAt: opts.format(opts.Now),
		CopyLabel: opts.CopyLabel,
		Record:    rec,
		CreatedAt: opts.format(rec.CreatedAt),
		Diagram:   newDiagram(rec.DamageNotes),
		Signature: SignatureURL(rec.Signature),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "receipt.html", data); err != nil {
		return "", fmt.Errorf("rendering receipt %s: %w", rec.ID, err)
	}
	return buf.String(), nil
}
