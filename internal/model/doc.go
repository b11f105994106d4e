// Package model defines the core data types shared across PhantomScan:
// entity categories, matches, redaction summaries, risk tiers, and the
// audit report structure. The package has no dependencies on other
// internal packages so that every layer can import it freely.
package model
