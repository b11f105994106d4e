// Package redact rewrites documents by replacing sensitive-data matches
// with fixed category-labeled mask tokens and counting what was removed.
//
// Mask tokens carry only the category name, never the length or content of
// the original value, so redacted output leaks nothing about what was
// masked beyond its classification.
package redact
