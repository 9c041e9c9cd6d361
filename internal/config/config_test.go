package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		DBPath:       "/var/lib/intake/intake.sqlite3",
		Addr:         "127.0.0.1:9000",
		LogPath:      "/var/log/intake.log",
		UnlockCode:   "2468",
		CompanyName:  "Acme Motors",
		CompanyPhone: "555-0100",
		Timezone:     "Asia/Riyadh",
		Printer: PrinterConfig{
			Type:          "spool",
			SpoolDir:      "/var/spool/intake",
			ReceiptCopies: 3,
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if *got != *original {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, original)
	}
}

func TestManager_Read_KeepsDefaults(t *testing.T) {
	m := &Manager{}
	got, err := m.Read(strings.NewReader("addr = \":9090\"\n[printer]\nreceipt_copies = 1\n"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	def := Default()
	if got.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", got.Addr, ":9090")
	}
	if got.Printer.ReceiptCopies != 1 {
		t.Errorf("ReceiptCopies = %d, want 1", got.Printer.ReceiptCopies)
	}
	if got.DBPath != def.DBPath {
		t.Errorf("DBPath = %q, want default %q", got.DBPath, def.DBPath)
	}
	if got.Printer.SpoolDir != def.Printer.SpoolDir {
		t.Errorf("SpoolDir = %q, want default %q", got.Printer.SpoolDir, def.Printer.SpoolDir)
	}
	if got.CompanyName != "Alfazaa Company" {
		t.Errorf("CompanyName = %q", got.CompanyName)
	}
}

func TestManager_Read_Errors(t *testing.T) {
	m := &Manager{}
	tests := map[string]string{
		"invalid toml": "addr = ",
		"unknown key":  "adress = \":1\"\n",
		"wrong type":   "[printer]\nreceipt_copies = \"two\"\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Read(strings.NewReader(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"utc", func(c *Config) { c.Timezone = "UTC" }, false},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"zero copies", func(c *Config) { c.Printer.ReceiptCopies = 0 }, true},
		{"no db", func(c *Config) { c.DBPath = "" }, true},
		{"no addr", func(c *Config) { c.Addr = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intake.toml")
	if err := os.WriteFile(path, []byte("unlock_code = \"1357\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UnlockCode != "1357" {
		t.Errorf("UnlockCode = %q", cfg.UnlockCode)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected error for missing explicit path")
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "intake.toml")
	cfg := Default()
	cfg.UnlockCode = "8642"

	if err := Init(path, cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %v, want 0600", perm)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.UnlockCode != "8642" {
		t.Errorf("UnlockCode = %q", got.UnlockCode)
	}

	if err := Init(path, cfg); err == nil {
		t.Error("expected error when config already exists")
	}
}
