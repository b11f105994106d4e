package detector

import (
	"regexp"

	"github.com/phantomsec/phantomscan/internal/model"
)

// phonePattern matches NANP phone numbers with separators, optionally
// prefixed with +1: "(555) 123-4567", "555-123-4567", "+1 555.123.4567".
// Separators are required so that unformatted digit runs (card numbers,
// account numbers) are not misclassified as phone numbers. The word
// boundary sits before the area code digits: a leading boundary before the
// optional "(" would never hold between two non-word characters.
var phonePattern = regexp.MustCompile(
	`(?:\+?1[-. ])?\(?\b\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`,
)

// NewPhoneDetector creates the detector for phone numbers.
func NewPhoneDetector() Detector {
	return &patternDetector{
		category: model.CategoryPhoneNumber,
		patterns: []compiledPattern{
			{re: phonePattern, confidence: 0.7},
		},
	}
}
