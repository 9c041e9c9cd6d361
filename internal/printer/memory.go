package printer

import (
	"context"
	"sync"
)

// Memory is a Printer that keeps printed documents in memory.
// It is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	docs []Document
	// Err, if set, is returned by Print instead of printing.
	Err error
}

// NewMemory returns an empty in-memory printer.
func NewMemory() *Memory {
	return &Memory{}
}

// Print records doc.
func (m *Memory) Print(ctx context.Context, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	body := make([]byte, len(doc.Body))
	copy(body, doc.Body)
	doc.Body = body
	m.docs = append(m.docs, doc)
	return nil
}

// Documents returns the printed documents in print order.
func (m *Memory) Documents() []Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Document, len(m.docs))
	copy(out, m.docs)
	return out
}

var _ Printer = (*Memory)(nil)
