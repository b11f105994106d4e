package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/phantomsec/phantomscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no redactions are shown.
	showEmpty bool

	// verbose enables the masked document text in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output including the masked document text.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs one audit report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb)
	w.writeReport(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs the batch reports in human-readable format.
func (w *SimpleWriter) WriteBatch(reports []*model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeBanner(&sb)
	for _, report := range reports {
		w.writeReport(&sb, report)
	}
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeBanner writes the report banner.
func (w *SimpleWriter) writeBanner(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       PHANTOMSCAN AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

// writeReport writes the sections for one audit report.
func (w *SimpleWriter) writeReport(sb *strings.Builder, report *model.AuditReport) {
	w.writeHeader(sb, report)
	if report.ErrorMessage != "" {
		return
	}
	w.writeSummary(sb, report)
	if w.verbose && report.MaskedText != "" {
		w.writeMaskedText(sb, report)
	}
}

// writeHeader writes the per-document header with audit information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(fmt.Sprintf("Source:     %s\n", report.Source))
	sb.WriteString(fmt.Sprintf("Audit Date: %s\n", report.DateAudited.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Risk Tier:  %s\n", report.RiskTier))

	switch {
	case report.ErrorMessage != "":
		sb.WriteString(fmt.Sprintf("Status:     ERROR - %s\n", report.ErrorMessage))
	case report.Alert:
		sb.WriteString("Status:     ALERT - redaction count exceeds the alert threshold\n")
	default:
		sb.WriteString("Status:     Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the per-category summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.AuditReport) {
	categories := orderedCategories(report.Summary)
	if len(categories) == 0 && !w.showEmpty {
		sb.WriteString("  No sensitive entities detected\n\n")
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("REDACTIONS BY CATEGORY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("  %-16s %d\n", categoryLabel(c)+":", report.Summary.PerCategory[c]))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:           %d redactions\n", report.Summary.TotalRedactions))
	sb.WriteString("\n")
}

// writeMaskedText writes the masked document text section.
func (w *SimpleWriter) writeMaskedText(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MASKED DOCUMENT\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
	sb.WriteString(report.MaskedText)
	if !strings.HasSuffix(report.MaskedText, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by PhantomScan\n")
	sb.WriteString("https://github.com/phantomsec/phantomscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
