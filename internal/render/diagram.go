package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alfazaa/intake/internal/model"
)

type diagramPart struct {
	Number   int
	Name     string
	Tire     bool
	Damaged  bool
	X, Y     float64
	Width    float64
	Height   float64
	CX, CY   float64
	R        float64
	TextY    float64
	FontSize int
}

type diagramData struct {
	Parts       []diagramPart
	LegendLeft  []string
	LegendRight []string
}

func newDiagram(notes []model.DamageNote) diagramData {
	catalog := model.Parts()

	var d diagramData
	legend := make([]string, 0, len(catalog))
	for i, p := range catalog {
		cx, cy := p.Print.Center()
		dp := diagramPart{
			Number:   i + 1,
			Name:     p.Name,
			Tire:     p.Tire,
			Damaged:  model.HasDamage(notes, p.Name),
			X:        p.Print.X,
			Y:        p.Print.Y,
			Width:    p.Print.Width,
			Height:   p.Print.Height,
			CX:       cx,
			CY:       cy,
			R:        p.Print.Width / 2,
			TextY:    cy + 4,
			FontSize: 12,
		}
		if p.Tire {
			dp.FontSize = 11
		}
		d.Parts = append(d.Parts, dp)
		legend = append(legend, fmt.Sprintf("%d. %s", i+1, p.Name))
	}

	half := (len(legend) + 1) / 2
	d.LegendLeft = legend[:half]
	d.LegendRight = legend[half:]
	return d
}

// DiagramSVG renders the numbered vehicle diagram with its legend. Parts with
// at least one note in notes are marked with a star.
func DiagramSVG(notes []model.DamageNote) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "diagram", newDiagram(notes)); err != nil {
		return "", fmt.Errorf("rendering diagram: %w", err)
	}
	return template.HTML(buf.String()), nil
}
