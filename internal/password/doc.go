// Package password analyzes password strength and generates secure
// replacement suggestions.
//
// Strength estimation uses the zxcvbn algorithm, which models realistic
// attacker behavior (dictionary words, keyboard patterns, common
// substitutions) rather than naive character-class counting. Generation
// uses crypto/rand throughout.
//
// Nothing in this package logs, stores, or transmits the analyzed
// password. Analysis results carry scores and structural facts only.
package password
