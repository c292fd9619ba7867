package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Writer appends frame samples to <dir>/frames.csv.
// A nil *Writer is valid and discards everything.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// NewWriter creates the output directory and frames.csv.
// Returns nil if dir is empty (output disabled).
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	return &Writer{file: f}, nil
}

// Write appends samples; the header goes out with the first batch only.
func (w *Writer) Write(samples ...FrameSample) error {
	if w == nil || len(samples) == 0 {
		return nil
	}

	if !w.headerWritten {
		if err := gocsv.Marshal(samples, w.file); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(samples, w.file); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// Close flushes and closes frames.csv.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	if err := w.file.Sync(); err != nil {
		w.file.Close()
		return fmt.Errorf("syncing frames.csv: %w", err)
	}
	return w.file.Close()
}
