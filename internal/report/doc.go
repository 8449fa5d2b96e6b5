// Package report writes computed ReportSets to an output.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter and FullJSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown with tables, a tier pie chart and commentary
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
