package detector

import (
	"regexp"

	"github.com/phantomsec/phantomscan/internal/model"
)

// emailPattern matches the common local@domain.tld address shape. It is
// deliberately narrower than RFC 5322: quoted local parts and IP-literal
// domains are rare in documents and produce false positives elsewhere.
var emailPattern = regexp.MustCompile(
	`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
)

// NewEmailDetector creates the detector for email addresses.
func NewEmailDetector() Detector {
	return &patternDetector{
		category: model.CategoryEmailAddress,
		patterns: []compiledPattern{
			{re: emailPattern, confidence: 0.95},
		},
	}
}
