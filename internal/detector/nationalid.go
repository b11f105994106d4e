package detector

import (
	"regexp"

	"github.com/phantomsec/phantomscan/internal/model"
)

// ssnPattern matches the US Social Security Number shape NNN-NN-NNNN.
// The dashes are required; a bare 9-digit run is not classified here.
var ssnPattern = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

// NewNationalIDDetector creates the detector for national identifiers.
func NewNationalIDDetector() Detector {
	return &patternDetector{
		category: model.CategoryNationalID,
		patterns: []compiledPattern{
			{re: ssnPattern, confidence: 0.85},
		},
	}
}
