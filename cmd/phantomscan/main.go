// Package main provides the entry point for the PhantomScan CLI.
//
// PhantomScan audits documents for sensitive data (credentials, card
// numbers, national IDs, contact details), masks what it finds, and
// scores the result. It also checks passwords against the public breach
// corpus using k-anonymity range queries.
//
// Usage:
//
//	phantomscan audit <file>...
//	phantomscan check
//	phantomscan serve
//
// See --help for all available options.
package main

// main is the entry point for PhantomScan.
func main() {
	Execute()
}
