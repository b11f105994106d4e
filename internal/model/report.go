package model

import "time"

// AuditReport is the result of auditing one document. It holds everything
// the report writers and the archive need, and deliberately nothing else:
// the original document text and raw match values are dropped before the
// report is constructed so they cannot leak through serialization.
type AuditReport struct {
	// Source identifies the audited document (file path or "request").
	Source string `json:"source"`

	// DateAudited is when the audit ran.
	DateAudited time.Time `json:"date_audited"`

	// MaskedText is the sanitized document text.
	MaskedText string `json:"masked_text"`

	// Summary aggregates redaction counts.
	Summary RedactionSummary `json:"redaction_summary"`

	// RiskTier is the archival risk classification for this run.
	RiskTier RiskTier `json:"risk_tier"`

	// Alert is true when the redaction count exceeded the live-alert
	// threshold at audit time.
	Alert bool `json:"alert"`

	// ErrorMessage records a failure for this document. Audit errors are
	// content-free by construction.
	ErrorMessage string `json:"error,omitempty"`
}

// NewAuditReport creates a report for the given source with the timestamp
// set to now.
func NewAuditReport(source string) *AuditReport {
	return &AuditReport{
		Source:      source,
		DateAudited: time.Now(),
		Summary:     NewRedactionSummary(),
	}
}
