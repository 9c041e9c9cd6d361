package db

import (
	"path/filepath"
	"testing"
)

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	version, dirty, err := SchemaVersion(database)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if dirty {
		t.Error("expected clean schema")
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}
}

func TestSchemaColumns(t *testing.T) {
	database := NewTestDB(t)

	rows, err := database.Query(`SELECT name, "notnull", dflt_value FROM pragma_table_info('intake_records')`)
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()

	notNull := map[string]bool{}
	defaults := map[string]string{}
	for rows.Next() {
		var name string
		var nn int
		var dflt *string
		if err := rows.Scan(&name, &nn, &dflt); err != nil {
			t.Fatal(err)
		}
		notNull[name] = nn == 1
		if dflt != nil {
			defaults[name] = *dflt
		}
	}

	for _, col := range []string{"driver_name", "driver_id", "customer_name", "customer_phone", "vehicle_plate", "vehicle_color", "vehicle_type", "created_at"} {
		if !notNull[col] {
			t.Errorf("expected %s NOT NULL", col)
		}
	}
	for _, col := range []string{"damage_notes", "general_comments", "signature"} {
		if v, ok := notNull[col]; !ok || v {
			t.Errorf("expected nullable column %s", col)
		}
	}
	if defaults["synced"] != "0" {
		t.Errorf("expected synced default 0, got %q", defaults["synced"])
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "intake.sqlite3")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if err := Migrate(database); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var mode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("expected WAL journal mode, got %q", mode)
	}
}
