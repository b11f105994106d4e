package detector

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/phantomsec/phantomscan/internal/model"
)

// Detector recognizes one entity category in raw text.
//
// Design decision: We use an interface rather than concrete types because:
//  1. Custom patterns from configuration plug in alongside built-ins
//  2. Tests can register synthetic detectors
//  3. Each category stays independently testable
type Detector interface {
	// Category returns the entity category this detector recognizes.
	Category() model.EntityCategory

	// Detect returns all raw hits in text. Hits may overlap with hits
	// from other detectors; the Matcher resolves overlaps. Detect must
	// be total: no panics, malformed input yields zero hits.
	Detect(text string) []model.Match
}

// Matcher applies all registered detectors and resolves overlapping hits
// into a non-overlapping, start-ordered match sequence.
//
// A Matcher is immutable after construction and safe for unbounded
// concurrent use.
type Matcher struct {
	detectors []Detector
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithCustomPattern registers an additional recognition pattern for the
// given category. The pattern is applied alongside the category's built-in
// detector; hits compete in overlap resolution like any other raw hit.
func WithCustomPattern(category model.EntityCategory, expr string, confidence float64) Option {
	return func(m *Matcher) error {
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid custom pattern for %s: %w", category, err)
		}
		m.detectors = append(m.detectors, &patternDetector{
			category: category,
			patterns: []compiledPattern{{re: re, confidence: confidence}},
		})
		return nil
	}
}

// WithDetector registers an additional detector.
func WithDetector(d Detector) Option {
	return func(m *Matcher) error {
		m.detectors = append(m.detectors, d)
		return nil
	}
}

// NewMatcher creates a Matcher with all built-in detectors registered,
// one per entity category.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{
		detectors: []Detector{
			NewCredentialDetector(),
			NewAPIKeyDetector(),
			NewBankAccountDetector(),
			NewNationalIDDetector(),
			NewEmailDetector(),
			NewPhoneDetector(),
			NewOtherDetector(),
		},
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Detect runs every detector against text and returns the resolved,
// non-overlapping matches sorted ascending by start offset.
// Empty text yields an empty sequence, never an error.
func (m *Matcher) Detect(text string) []model.Match {
	raw := make([]model.Match, 0)
	for _, d := range m.detectors {
		raw = append(raw, d.Detect(text)...)
	}
	return resolveOverlaps(raw)
}

// resolveOverlaps keeps at most one hit per overlapping byte range.
// Preference order: longer span, then category priority, then earlier
// start. The result is sorted ascending by start.
func resolveOverlaps(raw []model.Match) []model.Match {
	// Order candidates by keep-preference.
	sort.SliceStable(raw, func(i, j int) bool {
		if raw[i].Len() != raw[j].Len() {
			return raw[i].Len() > raw[j].Len()
		}
		if raw[i].Category.Priority() != raw[j].Category.Priority() {
			return raw[i].Category.Priority() < raw[j].Category.Priority()
		}
		return raw[i].Start < raw[j].Start
	})

	kept := make([]model.Match, 0, len(raw))
	for _, candidate := range raw {
		conflict := false
		for _, k := range kept {
			if candidate.Overlaps(k) {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, candidate)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// compiledPattern pairs a regular expression with the confidence assigned
// to its hits.
type compiledPattern struct {
	re         *regexp.Regexp
	confidence float64
}

// patternDetector is the shared implementation behind all built-in
// detectors: one category, one or more regular expressions.
type patternDetector struct {
	category model.EntityCategory
	patterns []compiledPattern
}

// Category returns the detector's entity category.
func (d *patternDetector) Category() model.EntityCategory {
	return d.category
}

// Detect applies every pattern and returns the raw hits. Hits from
// different patterns of the same detector may overlap; the Matcher
// resolves them together with hits from other detectors.
func (d *patternDetector) Detect(text string) []model.Match {
	if text == "" {
		return []model.Match{}
	}

	hits := make([]model.Match, 0)
	for _, p := range d.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			hits = append(hits, model.Match{
				Category:   d.category,
				Start:      loc[0],
				End:        loc[1],
				RawValue:   text[loc[0]:loc[1]],
				Confidence: p.confidence,
			})
		}
	}
	return hits
}
