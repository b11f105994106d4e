// Package server exposes the audit pipeline and breach checker over HTTP.
//
// The API accepts raw document content and passwords, so the server binds
// to loopback by default and every response is built from sanitized data:
// masked text, counts, classifications, and scores. Raw submitted values
// never appear in responses, logs, or the archive.
//
// Endpoints:
//
//	POST /api/analyze      - audit a document and return masked text
//	POST /api/check-breach - k-anonymity breach check plus strength analysis
//	GET  /api/history      - recent archived audit runs and statistics
//	GET  /api/health       - liveness probe
package server
