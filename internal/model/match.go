package model

// Match is a single sensitive-data hit within a document.
//
// Start and End are byte offsets into the scanned text with Start < End.
// Matches produced by one detection run are mutually non-overlapping and
// sorted ascending by Start.
//
// RawValue holds the original sensitive substring. It exists only so the
// redactor can verify the value is absent from its output; it must never
// be copied into logs, responses, or archive rows. Only Category and
// aggregate counts may cross the system boundary.
type Match struct {
	// Category is the entity category that matched.
	Category EntityCategory

	// Start is the byte offset where the match begins (inclusive).
	Start int

	// End is the byte offset where the match ends (exclusive).
	End int

	// RawValue is the matched substring. Boundary-crossing structures
	// must never include this field.
	RawValue string

	// Confidence is the detector's confidence in the classification,
	// in the range (0, 1]. Structural patterns with label cues report
	// higher confidence than bare digit groups. The score is
	// informational: overlap resolution uses span length, category
	// priority, and start position, never Confidence.
	Confidence float64
}

// Len returns the match span length in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Overlaps reports whether two matches share any byte range.
func (m Match) Overlaps(other Match) bool {
	return m.Start < other.End && other.Start < m.End
}
