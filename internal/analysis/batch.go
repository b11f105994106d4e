package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phantomsec/phantomscan/internal/model"
)

// BatchAuditor audits multiple files concurrently with a bounded number of
// workers.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because each file is independent and errgroup handles the
// concurrency correctly. Results keep the input order regardless of
// completion order.
type BatchAuditor struct {
	// analyzer runs the redaction pipeline for each file.
	analyzer *Analyzer

	// concurrency is the maximum number of files audited simultaneously.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchAuditor.
type BatchOption func(*BatchAuditor)

// WithConcurrency sets the maximum number of concurrent file audits.
// Default is 10 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchAuditor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchAuditor) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBatchAuditor creates a BatchAuditor around the given analyzer.
func NewBatchAuditor(analyzer *Analyzer, opts ...BatchOption) *BatchAuditor {
	b := &BatchAuditor{
		analyzer:    analyzer,
		concurrency: 10,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// AuditFiles audits every path and returns one report per path in input
// order. Per-file read failures are recorded in the report's ErrorMessage
// rather than aborting the batch; only context cancellation stops early.
func (b *BatchAuditor) AuditFiles(ctx context.Context, paths []string) ([]*model.AuditReport, error) {
	b.logger.Info("starting batch audit",
		"total_files", len(paths),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	reports := make([]*model.AuditReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			reports[i] = b.auditFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}

	b.logger.Info("batch audit completed",
		"total_files", len(paths),
		"duration", time.Since(startTime),
	)
	return reports, nil
}

// auditFile reads one file and runs the pipeline over its content.
func (b *BatchAuditor) auditFile(path string) *model.AuditReport {
	report := model.NewAuditReport(path)

	data, err := os.ReadFile(path) //nolint:gosec // User-provided audit target is intentional.
	if err != nil {
		// The wrapped error names the path only, never file content.
		report.ErrorMessage = fmt.Sprintf("reading document: %v", err)
		return report
	}

	result := b.analyzer.Analyze(string(data))
	report.MaskedText = result.MaskedText
	report.Summary = result.Summary
	report.RiskTier = result.RiskTier
	report.Alert = result.Alert
	return report
}
