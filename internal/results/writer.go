// Package results persists batch pipeline output: a JSONL stream of
// per-document records and a YAML run summary.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/lehigh-university-libraries/pagemeta/internal/models"
)

// Writer appends per-document records to a JSONL file. Safe for
// concurrent use by the worker pool.
type Writer struct {
	file *os.File
	mu   sync.Mutex
}

// NewWriter opens (or creates) the JSONL output file for appending.
func NewWriter(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	return &Writer{file: file}, nil
}

// Append writes one document record as a single JSON line.
func (w *Writer) Append(doc *models.ProcessedDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write document record: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.file.Close()
}
