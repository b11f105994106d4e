package model

// RedactionSummary aggregates the outcome of one redaction run.
//
// Invariant: TotalRedactions == sum of PerCategory values == number of
// matches consumed by the run that produced it.
type RedactionSummary struct {
	// TotalRedactions is the number of spans replaced.
	TotalRedactions int `json:"total_redactions"`

	// PerCategory counts redactions by entity category.
	// Categories with zero redactions are omitted.
	PerCategory map[EntityCategory]int `json:"by_category"`
}

// NewRedactionSummary returns an empty summary ready for counting.
func NewRedactionSummary() RedactionSummary {
	return RedactionSummary{
		PerCategory: make(map[EntityCategory]int),
	}
}

// Add records one redaction for the given category.
func (s *RedactionSummary) Add(category EntityCategory) {
	s.PerCategory[category]++
	s.TotalRedactions++
}
