package breach

import "errors"

// Breach lookup errors.
//
// Design decision: We define sentinel errors rather than wrapping all
// failures generically so callers can distinguish "try again" (network)
// from "service problem, back off" (upstream) with errors.Is. Neither
// error ever carries the password or digest.
var (
	// ErrNetwork is returned when the breach service could not be
	// reached: connection refused, DNS failure, timeout, or a canceled
	// context. The lookup is retryable by the caller; the checker does
	// not retry internally.
	ErrNetwork = errors.New("breach service unreachable")

	// ErrUpstream is returned when the breach service was reached but
	// answered with a non-success status or a malformed payload.
	// Immediate retries are unlikely to help.
	ErrUpstream = errors.New("breach service returned an unexpected response")

	// ErrEmptyPassword is returned when an empty password is submitted.
	// An empty string has a well-defined digest, but checking it is
	// always a caller bug.
	ErrEmptyPassword = errors.New("password must not be empty")
)
