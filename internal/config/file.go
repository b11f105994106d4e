package config

import (
	"fmt"

	"github.com/phantomsec/phantomscan/internal/model"
)

// PatternRule is a custom detection pattern declared in the config file.
// Custom patterns extend the built-in rule set; they cannot remove or
// replace built-in rules.
type PatternRule struct {
	// Category is the entity category the pattern reports matches under.
	// Must be one of the known category names (e.g., "Credential", "Other").
	Category string `yaml:"category"`

	// Pattern is the Go regular expression to match.
	Pattern string `yaml:"pattern"`

	// Confidence is the score assigned to matches of this pattern,
	// between 0 and 1. If zero, a default of 0.8 is used.
	Confidence float64 `yaml:"confidence,omitempty"`
}

// File represents the structure of the .phantomscan configuration file.
type File struct {
	// Patterns are additional detection rules merged with the built-ins.
	Patterns []PatternRule `yaml:"patterns,omitempty"`

	// AlertThreshold overrides the default live-alert threshold when set
	// to a positive value. A pointer distinguishes "not set" from zero.
	AlertThreshold *int `yaml:"alertThreshold,omitempty"`
}

// defaultPatternConfidence is assigned to custom patterns that do not
// declare their own confidence.
const defaultPatternConfidence = 0.8

// Rules validates the declared patterns and returns them with category
// names resolved and default confidences applied. Invalid categories and
// confidence values are reported here, at load time, rather than when the
// matcher is built.
func (cf *File) Rules() ([]ResolvedRule, error) {
	rules := make([]ResolvedRule, 0, len(cf.Patterns))
	for i, p := range cf.Patterns {
		category, ok := model.ParseCategory(p.Category)
		if !ok {
			return nil, fmt.Errorf("pattern %d: unknown category %q", i, p.Category)
		}
		if p.Pattern == "" {
			return nil, fmt.Errorf("pattern %d: empty pattern", i)
		}
		confidence := p.Confidence
		if confidence == 0 {
			confidence = defaultPatternConfidence
		}
		if confidence < 0 || confidence > 1 {
			return nil, fmt.Errorf("pattern %d: confidence %v out of range [0, 1]", i, confidence)
		}
		rules = append(rules, ResolvedRule{
			Category:   category,
			Pattern:    p.Pattern,
			Confidence: confidence,
		})
	}
	return rules, nil
}

// ResolvedRule is a validated custom pattern ready to register with the
// entity matcher.
type ResolvedRule struct {
	Category   model.EntityCategory
	Pattern    string
	Confidence float64
}

// Apply copies file-level overrides onto the runtime configuration.
// Only fields explicitly set in the file are applied.
func (cf *File) Apply(c *Config) {
	if cf.AlertThreshold != nil && *cf.AlertThreshold > 0 {
		c.AlertThreshold = *cf.AlertThreshold
	}
}
