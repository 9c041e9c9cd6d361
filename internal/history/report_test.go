package history

import (
	"testing"
	"time"

	"github.com/alfazaa/intake/internal/model"
)

func TestForReport(t *testing.T) {
	now := at("2025-03-10T15:00:00Z")
	records := []model.IntakeRecord{
		record("today-late", "A", "1", at("2025-03-10T14:59:00Z")),
		record("today-early", "B", "2", at("2025-03-10T00:00:00Z")),
		record("yesterday", "C", "3", at("2025-03-09T23:59:59Z")),
		record("six-days", "D", "4", at("2025-03-04T09:00:00Z")),
		record("eight-days", "E", "5", at("2025-03-02T09:00:00Z")),
	}

	tests := []struct {
		kind model.ReportKind
		want []string
	}{
		{model.ReportToday, []string{"today-late", "today-early"}},
		{model.ReportPastWeek, []string{"today-late", "today-early", "yesterday", "six-days"}},
		{model.ReportFull, []string{"today-late", "today-early", "yesterday", "six-days", "eight-days"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := ids(ForReport(records, tt.kind, now))
			if !equalIDs(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestForReportTodayUsesLocalDate(t *testing.T) {
	loc := time.FixedZone("AST", 3*60*60)
	// 01:00 local on the 11th is 22:00 UTC on the 10th.
	now := time.Date(2025, 3, 11, 1, 0, 0, 0, loc)
	records := []model.IntakeRecord{
		record("local-today", "A", "1", at("2025-03-10T21:30:00Z")),
		record("local-yesterday", "B", "2", at("2025-03-10T20:30:00Z")),
	}

	got := ids(ForReport(records, model.ReportToday, now))
	if !equalIDs(got, []string{"local-today"}) {
		t.Errorf("got %v", got)
	}
}

func TestForReportEmptyWindow(t *testing.T) {
	now := at("2025-03-10T15:00:00Z")
	records := []model.IntakeRecord{record("old", "A", "1", at("2024-01-01T00:00:00Z"))}
	if got := ForReport(records, model.ReportToday, now); len(got) != 0 {
		t.Errorf("expected no records, got %v", ids(got))
	}
}
