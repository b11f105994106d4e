package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoTarget is returned when no file to audit is specified.
	// This error occurs when the audit command receives no positional arguments.
	ErrNoTarget = errors.New("no target specified: provide at least one file to audit")

	// ErrNoListenAddr is returned when the serve command has no address
	// to bind. ValidateServe requires one even though NewConfig provides a
	// default, so a misconstructed config fails fast.
	ErrNoListenAddr = errors.New("no listen address specified: provide a host:port address to bind")

	// ErrInvalidTimeout is returned when the breach timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid breach timeout: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// A concurrency of zero would mean no files get audited at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidAlertThreshold is returned when the alert threshold is not
	// positive. An audit with zero redactions is never alert-worthy, so the
	// threshold must be at least 1.
	ErrInvalidAlertThreshold = errors.New("invalid alert threshold: must be positive")

	// ErrInvalidMaxRequestBody is returned when the max request body size is
	// negative. A negative size is invalid; use 0 to use the default limit.
	ErrInvalidMaxRequestBody = errors.New("invalid max request body size: must be non-negative")
)
