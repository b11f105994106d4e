// Package breach checks passwords against a breach corpus using the
// k-anonymity range protocol: only the first five hex characters of the
// password's SHA-1 digest ever leave the process, and candidate suffixes
// returned by the corpus are matched locally.
//
// The plaintext password and its full digest are never logged, never sent
// over the network, and never embedded in error values.
package breach
