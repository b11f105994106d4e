package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/phantomsec/phantomscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// includeMasked controls whether the masked document text is embedded
	// in the report. The masked text contains no raw values, but large
	// documents can make reports unwieldy.
	includeMasked bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMaskedText embeds the masked document text in the report.
func WithMaskedText() MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.includeMasked = true
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one audit report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("PhantomScan Audit Report")
	md.PlainText("")
	w.writeReport(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs the batch reports as sections of one document.
func (w *MarkdownWriter) WriteBatch(reports []*model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("PhantomScan Audit Report")
	md.PlainText("")
	w.writeBatchSummary(md, reports)

	for _, report := range reports {
		md.H2(report.Source)
		md.PlainText("")
		w.writeReport(md, report)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeBatchSummary writes an overview table across all audited documents.
func (w *MarkdownWriter) writeBatchSummary(md *markdown.Markdown, reports []*model.AuditReport) {
	rows := make([][]string, len(reports))
	for i, r := range reports {
		status := "OK"
		if r.ErrorMessage != "" {
			status = "Error"
		}
		rows[i] = []string{
			"`" + r.Source + "`",
			strconv.Itoa(r.Summary.TotalRedactions),
			r.RiskTier.String(),
			status,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Source", "Redactions", "Risk Tier", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeReport writes the sections for one audit report.
func (w *MarkdownWriter) writeReport(md *markdown.Markdown, report *model.AuditReport) {
	w.writeHeader(md, report)
	if report.ErrorMessage != "" {
		return
	}
	w.writeSummary(md, report)
	if w.includeMasked && report.MaskedText != "" {
		md.H3("Masked Document")
		md.PlainText("")
		md.CodeBlocks(markdown.SyntaxHighlightText, report.MaskedText)
		md.PlainText("")
	}
}

// writeHeader writes the report header with audit information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Audit Date", report.DateAudited.Format("2006-01-02 15:04:05 MST")},
			{"Total Redactions", strconv.Itoa(report.Summary.TotalRedactions)},
			{"Risk Tier", report.RiskTier.String()},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.AuditReport) string {
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeSummary writes the per-category summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.AuditReport) {
	md.H3("Redactions by Category")
	md.PlainText("")

	categories := orderedCategories(report.Summary)
	if len(categories) == 0 {
		md.PlainText("No sensitive entities detected.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(categories)+1)
		for _, c := range categories {
			rows = append(rows, []string{
				categoryLabel(c),
				strconv.Itoa(report.Summary.PerCategory[c]),
			})
		}
		rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.Summary.TotalRedactions) + "**"})

		md.Table(markdown.TableSet{
			Header: []string{"Category", "Count"},
			Rows:   rows,
		})
		md.PlainText("")

		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for category distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AuditReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Redaction Category Distribution"),
		piechart.WithShowData(true),
	)

	for _, c := range orderedCategories(report.Summary) {
		chart.LabelAndIntValue(categoryLabel(c), uint64(report.Summary.PerCategory[c]))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the audit outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	switch {
	case report.Alert:
		md.Cautionf(
			"High-risk document: %d redactions exceed the alert threshold. Review the source before sharing.",
			report.Summary.TotalRedactions,
		)
	case report.RiskTier == model.RiskHigh:
		md.Warningf(
			"High risk tier: %d sensitive entities were redacted.",
			report.Summary.TotalRedactions,
		)
	case report.RiskTier == model.RiskMedium:
		md.Importantf(
			"Medium risk tier: %d sensitive entities were redacted.",
			report.Summary.TotalRedactions,
		)
	case report.Summary.TotalRedactions > 0:
		md.Note("Only a small number of sensitive entities detected.")
	default:
		md.Tip("No sensitive entities detected.")
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [PhantomScan](https://github.com/phantomsec/phantomscan)*")
}
