package detector

import (
	"regexp"

	"github.com/phantomsec/phantomscan/internal/model"
)

// ipv4Pattern matches dotted-quad IPv4 addresses. Octet range validation
// is intentionally omitted: over-matching "999.1.1.1" in a document is a
// cheaper failure mode for an auditor than under-matching a real address.
var ipv4Pattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

// NewOtherDetector creates the catch-all detector for remaining
// identifiers. It currently recognizes bare IPv4 addresses.
func NewOtherDetector() Detector {
	return &patternDetector{
		category: model.CategoryOther,
		patterns: []compiledPattern{
			{re: ipv4Pattern, confidence: 0.5},
		},
	}
}
