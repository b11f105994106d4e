package model

import "fmt"

// RiskTier is the coarse risk classification derived from redaction counts.
// It is a pure function of the count; downstream consumers use it for
// alerting and archival records.
//
// Design decision: We use iota-based constants rather than string constants
// so tiers order naturally (Low < Medium < High) and compare cheaply.
// The String() method provides the wire representation.
type RiskTier int

const (
	// RiskLow indicates 5 or fewer redactions.
	RiskLow RiskTier = iota

	// RiskMedium indicates more than 5 and at most 20 redactions.
	RiskMedium

	// RiskHigh indicates more than 20 redactions.
	RiskHigh
)

// String returns the wire representation of the risk tier.
func (r RiskTier) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so the tier serializes
// as its name in JSON output.
func (r RiskTier) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, the inverse of
// MarshalText, so reports round-trip through JSON.
func (r *RiskTier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Low":
		*r = RiskLow
	case "Medium":
		*r = RiskMedium
	case "High":
		*r = RiskHigh
	default:
		return fmt.Errorf("unknown risk tier %q", string(text))
	}
	return nil
}

// Archival tier thresholds. These are exclusive lower bounds:
// count > HighTierThreshold is High, count > MediumTierThreshold is Medium.
const (
	// MediumTierThreshold is the redaction count above which a run is
	// classified Medium.
	MediumTierThreshold = 5

	// HighTierThreshold is the redaction count above which a run is
	// classified High.
	HighTierThreshold = 20
)

// DefaultAlertThreshold is the redaction count above which a live alert
// fires. It coincides with MediumTierThreshold today, but the two are
// independent knobs: the alert threshold drives immediate notification
// while the tier thresholds drive archival classification. Keep them
// separately configurable.
const DefaultAlertThreshold = 5

// TierForCount returns the archival risk tier for a redaction count.
// Boundaries: 5 is Low, 6 is Medium, 20 is Medium, 21 is High.
func TierForCount(count int) RiskTier {
	switch {
	case count > HighTierThreshold:
		return RiskHigh
	case count > MediumTierThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ExceedsAlertThreshold reports whether a redaction count should trigger
// a live high-risk alert using the given threshold. A threshold of 0 or
// less falls back to DefaultAlertThreshold.
func ExceedsAlertThreshold(count, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultAlertThreshold
	}
	return count > threshold
}
