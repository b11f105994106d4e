package detector

import (
	"regexp"

	"github.com/phantomsec/phantomscan/internal/model"
)

// apiKeyPattern matches key/value-shaped API credentials: a recognized key
// name joined by ":" or "=" to a token of at least 16 key-safe characters,
// optionally quoted. Shorter values are too ambiguous to classify as keys.
var apiKeyPattern = regexp.MustCompile(
	`(?i)\b(?:api[_-]?key|apikey|api[_-]?secret|secret[_-]?key|access[_-]?token)\b\s*[:=]\s*['"]?[A-Za-z0-9_\-]{16,}['"]?`,
)

// NewAPIKeyDetector creates the detector for API keys and access tokens.
func NewAPIKeyDetector() Detector {
	return &patternDetector{
		category: model.CategoryAPIKey,
		patterns: []compiledPattern{
			{re: apiKeyPattern, confidence: 0.9},
		},
	}
}
