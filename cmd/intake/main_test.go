package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/alfazaa/intake/internal/model"
)

func TestGenerateCode(t *testing.T) {
	code, err := generateCode(6)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("expected digits only, got %q", code)
		}
	}
}

func TestWriteHistory(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	records := []model.IntakeRecord{
		{
			ID:        "b",
			CreatedAt: time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC),
			Intake: model.Intake{
				DriverName: "Ahmed", CustomerName: "Sara", VehiclePlate: "777",
				DamageNotes: []model.DamageNote{{Part: "Hood", Damage: model.DamageDent}},
			},
		},
		{
			ID:        "a",
			CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
			Intake:    model.Intake{DriverName: "Omar", CustomerName: "Lina", VehiclePlate: "12"},
		},
	}

	var buf bytes.Buffer
	writeHistory(&buf, records, 5, time.UTC)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if !strings.HasPrefix(lines[0], "2025-03-02 09:30  777 ") || !strings.HasSuffix(lines[0], "Hood (Dent)") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "no damage") {
		t.Errorf("unexpected second line %q", lines[1])
	}
	if lines[len(lines)-1] != "2 of 5 records" {
		t.Errorf("unexpected count line %q", lines[len(lines)-1])
	}

	buf.Reset()
	writeHistory(&buf, nil, 5, time.UTC)
	if strings.TrimSpace(buf.String()) != "No records found." {
		t.Errorf("unexpected empty output %q", buf.String())
	}
}
