package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Spool is a Printer that writes each document as a file in Dir, where a print
// server or share sheet picks it up.
type Spool struct {
	Dir string
}

// NewSpool creates the spool directory if needed.
func NewSpool(dir string) (*Spool, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating spool directory: %w", err)
	}
	return &Spool{Dir: dir}, nil
}

// Print writes doc to Dir/doc.Name atomically, replacing an existing file.
func (s *Spool) Print(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := filepath.Base(doc.Name)
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("invalid document name %q", doc.Name)
	}

	tmp, err := os.CreateTemp(s.Dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(doc.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.Dir, name)); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Path returns where a document with the given name is spooled.
func (s *Spool) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}

var _ Printer = (*Spool)(nil)
