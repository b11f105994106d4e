// Package analysis orchestrates the redaction pipeline: entity detection,
// masking, and risk scoring composed into one request/response cycle.
//
// The pipeline is pure and total. Detection and redaction cannot
// transiently fail, so Analyze performs no retries and introduces no error
// kinds of its own. Analyzer instances are immutable after construction
// and support unbounded concurrent use.
package analysis
