// Package render turns intake records into printable documents: the per-intake
// receipt, the aggregate history report (HTML and XLSX), and the annotated
// vehicle diagram they share.
package render

import (
	"embed"
	"errors"
	"html/template"
	"strings"
	"time"
)

// ErrReportEmpty is returned when a report is requested for zero records.
var ErrReportEmpty = errors.New("no records found for this report")

// Defaults for Options.
const (
	DefaultCompany = "Alfazaa Company"
	DefaultPhone   = "800-8080"
)

// DisplayLayout formats instants on printed documents.
const DisplayLayout = "2006-01-02 15:04"

// Options carries the presentation settings shared by all documents.
type Options struct {
	Company  string
	Phone    string
	Location *time.Location
	// Now is the print or generation time shown on the document.
	Now time.Time
	// CopyLabel marks which printed copy a receipt is, e.g. "Customer copy".
	CopyLabel string
}

func (o Options) withDefaults() Options {
	if o.Company == "" {
		o.Company = DefaultCompany
	}
	if o.Phone == "" {
		o.Phone = DefaultPhone
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

func (o Options) format(t time.Time) string {
	return t.In(o.Location).Format(DisplayLayout)
}

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(
	template.New("render").Funcs(funcMap()).ParseFS(templatesFS, "templates/*.html"),
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"inc":   func(i int) int { return i + 1 },
	}
}

// SignatureURL returns sig as an image URL if it is an inline PNG or JPEG.
// Anything else is not rendered as an image.
func SignatureURL(sig *string) template.URL {
	if sig == nil {
		return ""
	}
	for _, prefix := range []string{"data:image/png;base64,", "data:image/jpeg;base64,"} {
		if strings.HasPrefix(*sig, prefix) {
			return template.URL(*sig)
		}
	}
	return ""
}
