package history

import (
	"time"

	"github.com/alfazaa/intake/internal/model"
)

// ForReport returns the records that belong in a report of the given kind, in
// their original order.
//
// Today's report holds the records created on now's calendar date, taken in
// now's location. The past week covers the seven days up to now.
func ForReport(records []model.IntakeRecord, kind model.ReportKind, now time.Time) []model.IntakeRecord {
	switch kind {
	case model.ReportToday:
		y, m, d := now.Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return Apply(records, Filter{From: &start, To: &end})
	case model.ReportPastWeek:
		from := now.AddDate(0, 0, -7)
		return Apply(records, Filter{From: &from})
	default:
		return Apply(records, Filter{})
	}
}
