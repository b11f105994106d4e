package detector

import (
	"regexp"

	"github.com/phantomsec/phantomscan/internal/model"
)

// credentialPattern matches labeled secrets such as "password: hunter2" or
// "secret=s3cr3t". The whole span, label included, is the match so that
// redaction removes the cue along with the value and redacted text is not
// re-classified.
//
// The label must be a whole word: "api_secret" does not trigger this
// pattern because "_" is a word character, while "api-secret" does and is
// then outranked by the longer ApiKey hit during overlap resolution.
var credentialPattern = regexp.MustCompile(
	`(?i)\b(?:password|passwd|passphrase|pwd|pass|secret)\b\s*[:=]\s*\S+`,
)

// NewCredentialDetector creates the detector for labeled passwords and
// secrets.
func NewCredentialDetector() Detector {
	return &patternDetector{
		category: model.CategoryCredential,
		patterns: []compiledPattern{
			{re: credentialPattern, confidence: 0.9},
		},
	}
}
