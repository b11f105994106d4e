package analysis

import (
	"log/slog"

	"github.com/phantomsec/phantomscan/internal/detector"
	"github.com/phantomsec/phantomscan/internal/model"
	"github.com/phantomsec/phantomscan/internal/redact"
)

// Result is the outcome of analyzing one document. It carries no trace of
// the original sensitive values: only the masked text, aggregate counts,
// and derived risk classification.
type Result struct {
	// MaskedText is the sanitized document.
	MaskedText string

	// Summary aggregates redaction counts per category.
	Summary model.RedactionSummary

	// RiskTier is the archival tier derived from the total count.
	RiskTier model.RiskTier

	// Alert is true when the count exceeded the live-alert threshold.
	Alert bool
}

// Analyzer composes the entity matcher, redactor, and risk scorer.
type Analyzer struct {
	// matcher applies the detector set and resolves overlaps.
	matcher *detector.Matcher

	// alertThreshold is the live-alert cut point. It is independent of
	// the archival tier thresholds; see model.ExceedsAlertThreshold.
	alertThreshold int

	// logger receives content-free telemetry (counts and tiers only).
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMatcher sets a custom matcher, typically one extended with
// configured patterns.
func WithMatcher(m *detector.Matcher) Option {
	return func(a *Analyzer) {
		if m != nil {
			a.matcher = m
		}
	}
}

// WithAlertThreshold sets the live-alert threshold. Values of 0 or less
// keep the default.
func WithAlertThreshold(threshold int) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.alertThreshold = threshold
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer with the built-in detector set.
func New(opts ...Option) (*Analyzer, error) {
	matcher, err := detector.NewMatcher()
	if err != nil {
		return nil, err
	}

	a := &Analyzer{
		matcher:        matcher,
		alertThreshold: model.DefaultAlertThreshold,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Analyze runs detection, redaction, and risk scoring over text.
//
// The sequence cannot fail: detectors are total and empty text yields an
// unchanged document with zero redactions. Analyze logs a warning when the
// live-alert threshold is exceeded; the log record carries counts only,
// never document content.
func (a *Analyzer) Analyze(text string) Result {
	matches := a.matcher.Detect(text)
	masked, summary := redact.Redact(text, matches)

	result := Result{
		MaskedText: masked,
		Summary:    summary,
		RiskTier:   model.TierForCount(summary.TotalRedactions),
		Alert:      model.ExceedsAlertThreshold(summary.TotalRedactions, a.alertThreshold),
	}

	if result.Alert {
		a.logger.Warn("high-risk document detected",
			"total_redactions", summary.TotalRedactions,
			"risk_tier", result.RiskTier.String(),
		)
	}

	return result
}
