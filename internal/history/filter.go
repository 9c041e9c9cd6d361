// Package history narrows the stored intake records for the history views and
// selects the records that go into an aggregate report.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/alfazaa/intake/internal/model"
)

// Filter holds the history search criteria. Zero values disable a criterion.
type Filter struct {
	Search string
	From   *time.Time
	To     *time.Time
}

// IsZero reports whether f matches every record.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && f.From == nil && f.To == nil
}

// Apply returns the records matching f, in their original order.
// The input slice is never modified.
func Apply(records []model.IntakeRecord, f Filter) []model.IntakeRecord {
	out := make([]model.IntakeRecord, 0, len(records))
	if f.IsZero() {
		return append(out, records...)
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, r := range records {
		if search != "" && !matches(r, search) {
			continue
		}
		if f.From != nil && r.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && r.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matches reports whether any searchable text of r contains s (already lower-cased).
func matches(r model.IntakeRecord, s string) bool {
	fields := []string{
		r.DriverName,
		r.CustomerName,
		r.VehiclePlate,
		r.VehicleColor,
		string(r.VehicleType),
	}
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), s) {
			return true
		}
	}
	for _, n := range r.DamageNotes {
		if strings.Contains(strings.ToLower(n.Part), s) || strings.Contains(strings.ToLower(string(n.Damage)), s) {
			return true
		}
	}
	return false
}

// DateLayout is the layout of date-only bounds as sent by date pickers.
const DateLayout = "2006-01-02"

// ParseDateBound parses a filter bound. An empty string yields nil.
//
// A full ISO-8601 instant is used as is. A date-only value is interpreted in loc:
// as the start of that day for a lower bound, and as the last instant of that day
// for an upper bound, so that "to today" includes records created later today.
func ParseDateBound(s string, upper bool, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	if d, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		if upper {
			d = d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &d, nil
	}

	t, err := model.ParseTime(s)
	if err != nil {
		return nil, fmt.Errorf("invalid date bound %q: expected YYYY-MM-DD or an ISO-8601 instant", s)
	}
	return &t, nil
}
