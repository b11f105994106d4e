// Package detector implements the entity matcher: a fixed set of
// sensitive-data detectors applied against raw text, yielding a set of
// non-overlapping matches with category, byte offsets, and confidence.
//
// Every entity category has exactly one detector. Detectors are total
// functions: they never panic and treat malformed input as zero matches.
//
// # Rule table
//
// The concrete recognition rule per category:
//
//	Credential    labeled secret: password|passwd|passphrase|pwd|pass|secret
//	              followed by ":" or "=" and a non-space token. The whole
//	              span (label and value) is the match.
//	ApiKey        key/value-shaped token: api_key|apikey|api_secret|
//	              secret_key|access_token (underscore or hyphen) followed
//	              by ":" or "=" and 16+ chars of [A-Za-z0-9_-].
//	BankAccount   credit card digit groups (four groups of four, optional
//	              "-" or space separators), labeled account numbers
//	              (8-17 digits), labeled routing numbers (9 digits).
//	NationalId    US SSN shape NNN-NN-NNNN.
//	EmailAddress  local@domain.tld address shape.
//	PhoneNumber   NANP shape with separators: (NNN) NNN-NNNN variants,
//	              optional +1 prefix.
//	Other         bare IPv4 address.
//
// # Overlap resolution
//
// When raw hits overlap in byte range (whether from the same detector or
// different ones), exactly one survives: the longer span wins; on equal
// length the higher-priority category wins (Credential > ApiKey >
// BankAccount > NationalId > EmailAddress > PhoneNumber > Other); on equal
// category the earlier start wins. The loser is discarded entirely.
//
// Output is sorted ascending by start offset, which the redactor relies on
// for its single left-to-right rewrite pass.
//
// Mask tokens emitted by the redactor ("[REDACTED:...]") are not matched
// by any rule, so re-scanning redacted text yields zero matches.
package detector
