// Package output provides formatters for printing query results.
//
// Supported formats:
//   - JSON Lines: one JSON object per line
//   - CSV: comma-separated values with a header row
//   - Table: ASCII table for terminals
//
// Column order is sorted in all formats so output is deterministic.
package output

import "io"

// Formatter writes rows in a specific output format.
type Formatter interface {
	Format(rows []map[string]interface{}) error
}

// New returns the formatter for a format name, or false if unknown.
// Known names: "json", "jsonl", "csv", "table".
func New(format string, w io.Writer) (Formatter, bool) {
	switch format {
	case "json", "jsonl":
		return NewJSONFormatter(w), true
	case "csv":
		return NewCSVFormatter(w), true
	case "table":
		return NewTableFormatter(w), true
	default:
		return nil, false
	}
}
