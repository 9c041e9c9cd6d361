package model

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether (x, y) lies inside r. Edges are inclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Center returns the centre point of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Part is one named region of the vehicle top-view diagram.
//
// Screen is in percent of a container with a 0.75 width:height ratio and drives
// the interactive diagram. Print is in SVG units of the receipt diagram
// (viewBox -10 -15 240 130). Both describe the same silhouette and must be
// edited together.
type Part struct {
	Name   string
	Screen Rect
	Print  Rect
	Tire   bool
}

// DiagramAspectRatio is the width:height ratio of the interactive diagram.
const DiagramAspectRatio = 0.75

// parts is the fixed part catalog. Order defines tap order and legend numbers.
var parts = []Part{
	{Name: "Front Bumper", Screen: Rect{36.7, 10, 26.6, 6.25}, Print: Rect{90, 4, 40, 10}},
	{Name: "Hood", Screen: Rect{36.7, 16.25, 26.6, 17.5}, Print: Rect{90, 14, 40, 18}},
	{Name: "Windshield", Screen: Rect{36.7, 33.75, 26.6, 10}, Print: Rect{90, 32, 40, 9}},
	{Name: "Roof", Screen: Rect{36.7, 43.75, 26.6, 22.5}, Print: Rect{90, 41, 40, 22}},
	{Name: "Front Left Door", Screen: Rect{13.3, 43.75, 23.4, 11.25}, Print: Rect{45, 41, 45, 12}},
	{Name: "Rear Left Door", Screen: Rect{13.3, 55, 23.4, 11.25}, Print: Rect{45, 53, 45, 10}},
	{Name: "Front Right Door", Screen: Rect{63.3, 43.75, 23.4, 11.25}, Print: Rect{130, 41, 45, 12}},
	{Name: "Rear Right Door", Screen: Rect{63.3, 55, 23.4, 11.25}, Print: Rect{130, 53, 45, 10}},
	{Name: "Front Left Fender", Screen: Rect{13.3, 26.25, 23.4, 17.5}, Print: Rect{45, 14, 45, 18}},
	{Name: "Front Right Fender", Screen: Rect{63.3, 26.25, 23.4, 17.5}, Print: Rect{130, 14, 45, 18}},
	{Name: "Rear Left Fender", Screen: Rect{13.3, 66.25, 23.4, 17.5}, Print: Rect{45, 63, 45, 18}},
	{Name: "Rear Right Fender", Screen: Rect{63.3, 66.25, 23.4, 17.5}, Print: Rect{130, 63, 45, 18}},
	{Name: "Trunk", Screen: Rect{36.7, 66.25, 26.6, 17.5}, Print: Rect{90, 81, 40, 18}},
	{Name: "Rear Bumper", Screen: Rect{36.7, 83.75, 26.6, 6.25}, Print: Rect{90, 99, 40, 9}},
	{Name: "Left Front Tire", Screen: Rect{0, 31.25, 13.3, 10}, Print: Rect{25, 22, 18, 18}, Tire: true},
	{Name: "Right Front Tire", Screen: Rect{86.7, 31.25, 13.3, 10}, Print: Rect{177, 22, 18, 18}, Tire: true},
	{Name: "Left Rear Tire", Screen: Rect{0, 71.25, 13.3, 10}, Print: Rect{25, 72, 18, 18}, Tire: true},
	{Name: "Right Rear Tire", Screen: Rect{86.7, 71.25, 13.3, 10}, Print: Rect{177, 72, 18, 18}, Tire: true},
}

// Parts returns a copy of the part catalog in its fixed order.
func Parts() []Part {
	out := make([]Part, len(parts))
	copy(out, parts)
	return out
}

// IsPart reports whether name is in the catalog.
func IsPart(name string) bool {
	return PartNumber(name) > 0
}

// PartNumber returns the 1-based legend number of the named part, or 0 if unknown.
func PartNumber(name string) int {
	for i, p := range parts {
		if p.Name == name {
			return i + 1
		}
	}
	return 0
}

// PartAt resolves a tap at screen coordinates (percent of the diagram container)
// to a part. Regions are rendered in catalog order, so when regions overlap the
// one rendered last is on top and wins.
func PartAt(x, y float64) (Part, bool) {
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i].Screen.Contains(x, y) {
			return parts[i], true
		}
	}
	return Part{}, false
}

// HasDamage reports whether any note in notes is recorded against part.
func HasDamage(notes []DamageNote, part string) bool {
	for _, n := range notes {
		if n.Part == part {
			return true
		}
	}
	return false
}
