package detector

import (
	"regexp"

	"github.com/phantomsec/phantomscan/internal/model"
)

// Banking identifier patterns. One detector covers the whole category:
// card numbers are recognized structurally, account and routing numbers
// need a label cue because bare digit runs are too ambiguous.
var (
	// creditCardPattern matches four groups of four digits with optional
	// "-" or space separators. A bare 16-digit run also matches; when a
	// labeled account hit covers the same digits, the longer labeled span
	// wins overlap resolution.
	creditCardPattern = regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`)

	// accountNumberPattern matches labeled account numbers of 8-17 digits.
	accountNumberPattern = regexp.MustCompile(
		`(?i)\b(?:account\s*(?:number|no\.?|#)?|acct\s*#?)\s*:?\s*\d{8,17}\b`,
	)

	// routingNumberPattern matches labeled 9-digit ABA routing numbers.
	routingNumberPattern = regexp.MustCompile(
		`(?i)\b(?:routing\s*(?:number|no\.?|#)?|rtg\s*#?|route)\s*:?\s*\d{9}\b`,
	)
)

// NewBankAccountDetector creates the detector for banking identifiers:
// credit card numbers, account numbers, and routing numbers.
func NewBankAccountDetector() Detector {
	return &patternDetector{
		category: model.CategoryBankAccount,
		patterns: []compiledPattern{
			{re: creditCardPattern, confidence: 0.8},
			{re: accountNumberPattern, confidence: 0.85},
			{re: routingNumberPattern, confidence: 0.85},
		},
	}
}
