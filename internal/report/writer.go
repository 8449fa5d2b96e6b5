package report

import (
	"io"

	"github.com/nao1215/salesreport/internal/model"
)

// Writer defines the interface for report output.
// Implementations write report sets in various formats.
type Writer interface {
	// Write outputs one reporting year.
	// Returns the number of bytes written and any error encountered.
	Write(rs *model.ReportSet) (int, error)

	// WriteAll outputs several reporting years as one document.
	WriteAll(sets []*model.ReportSet) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report set to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(rs *model.ReportSet) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(rs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll outputs the report sets to all configured Writers.
func (m *MultiWriter) WriteAll(sets []*model.ReportSet) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAll(sets)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// writeEach calls write for every non-nil set and sums the bytes written.
func writeEach(sets []*model.ReportSet, write func(*model.ReportSet) (int, error)) (int, error) {
	var total int
	for _, rs := range sets {
		if rs == nil {
			continue
		}
		n, err := write(rs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
