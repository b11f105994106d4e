// Package archive persists audit run summaries in SQLite for historical
// review: when a run happened, how many redactions it made per category,
// and its archival risk tier.
//
// The archive never stores document content, masked text, or raw match
// values. Rows carry counts and classifications only, so the database file
// is safe to retain and share.
package archive
