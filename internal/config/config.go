// Package config loads the intake service configuration from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "intake.toml"

// Config is the service configuration. Keys missing from the file keep their
// defaults.
type Config struct {
	DBPath       string `toml:"db_path"`
	Addr         string `toml:"addr"`
	LogPath      string `toml:"log_path"`
	UnlockCode   string `toml:"unlock_code"`
	CompanyName  string `toml:"company_name"`
	CompanyPhone string `toml:"company_phone"`
	Timezone     string `toml:"timezone"` // IANA name, or "Local"

	Printer PrinterConfig `toml:"printer"`
}

// PrinterConfig selects where printed documents go.
type PrinterConfig struct {
	Type          string `toml:"type"` // "spool" (default) or "memory"
	SpoolDir      string `toml:"spool_dir,omitempty"`
	ReceiptCopies int    `toml:"receipt_copies"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DBPath:       "intake.sqlite3",
		Addr:         ":8080",
		CompanyName:  "Alfazaa Company",
		CompanyPhone: "800-8080",
		Timezone:     "Local",
		Printer: PrinterConfig{
			Type:          "spool",
			SpoolDir:      "spool",
			ReceiptCopies: 2,
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must be set")
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must be set")
	}
	if c.Printer.ReceiptCopies < 1 {
		return fmt.Errorf("printer.receipt_copies must be at least 1, got %d", c.Printer.ReceiptCopies)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the time zone documents and date filters are shown in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from r on top of the defaults.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Write encodes a Config to w.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config file at path. A missing file at DefaultPath yields the
// defaults; a missing file anywhere else is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Init writes cfg to a new file at path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	// The file holds the unlock code.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
