package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/salesreport/internal/model"
)

// JSONWriter outputs report sets in JSON format.
// Money and percentages are JSON strings holding exact decimals ("10150.5").
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs one report set as a JSON object.
func (w *JSONWriter) Write(rs *model.ReportSet) (int, error) {
	return w.writeJSON(rs)
}

// WriteAll outputs the report sets as a JSON array.
func (w *JSONWriter) WriteAll(sets []*model.ReportSet) (int, error) {
	return w.writeJSON(nonNil(sets))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// nonNil returns sets without nil entries, never nil itself.
func nonNil(sets []*model.ReportSet) []*model.ReportSet {
	out := make([]*model.ReportSet, 0, len(sets))
	for _, rs := range sets {
		if rs != nil {
			out = append(out, rs)
		}
	}
	return out
}

// JSONReport wraps report sets with the version of the tool that produced them.
type JSONReport struct {
	// Version is the salesreport version that generated the reports.
	Version string `json:"version"`

	// Reports holds one set per reporting year.
	Reports []*model.ReportSet `json:"reports"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(sets []*model.ReportSet, version string) *JSONReport {
	return &JSONReport{
		Version: version,
		Reports: nonNil(sets),
	}
}

// FullJSONWriter outputs report sets inside a JSONReport envelope.
type FullJSONWriter struct {
	*JSONWriter

	// version is the salesreport version string.
	version string
}

// NewFullJSONWriter creates a writer for versioned report documents.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs one report set wrapped with metadata.
func (w *FullJSONWriter) Write(rs *model.ReportSet) (int, error) {
	return w.WriteAll([]*model.ReportSet{rs})
}

// WriteAll outputs the report sets wrapped with metadata.
func (w *FullJSONWriter) WriteAll(sets []*model.ReportSet) (int, error) {
	return w.writeJSON(NewJSONReport(sets, w.version))
}
