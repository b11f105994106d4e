package report

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/phantomsec/phantomscan/internal/model"
)

// Writer defines the interface for report output.
// Implementations write audit results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs one audit report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.AuditReport) (int, error)

	// WriteBatch outputs the reports of a batch audit run.
	// Returns the total bytes written and any error encountered.
	WriteBatch(reports []*model.AuditReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.AuditReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBatch outputs the batch reports to all configured Writers.
func (m *MultiWriter) WriteBatch(reports []*model.AuditReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(reports)
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

// titleCaser renders category labels for display.
var titleCaser = cases.Title(language.English)

// categoryLabel converts a category name to a human-readable label:
// "EmailAddress" becomes "Email Address", "ApiKey" becomes "Api Key".
func categoryLabel(c model.EntityCategory) string {
	var sb strings.Builder
	for i, r := range c.String() {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return titleCaser.String(sb.String())
}

// orderedCategories returns the categories present in the summary in
// priority order, so tables render deterministically.
func orderedCategories(summary model.RedactionSummary) []model.EntityCategory {
	present := make([]model.EntityCategory, 0, len(summary.PerCategory))
	for _, c := range model.Categories {
		if summary.PerCategory[c] > 0 {
			present = append(present, c)
		}
	}
	return present
}
