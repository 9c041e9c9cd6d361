package printer

import "fmt"

// New creates a Printer for the given kind: "spool" writes files to dir,
// "memory" keeps documents in memory.
func New(kind, dir string) (Printer, error) {
	switch kind {
	case "", "spool":
		if dir == "" {
			return nil, fmt.Errorf("spool printer requires spool_dir to be set")
		}
		return NewSpool(dir)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown printer type: %s", kind)
	}
}
