// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (passwords, digests, document text)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - Credential values detected by key name (password, secret, api_key)
//   - Document content and raw match values
//   - Password digests and digest suffixes from breach checks
//   - Values that look like card numbers, SSNs, or hex digests
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of audited content in logs that may be shared or stored. The rest
// of the application is written to log counts and classifications only; this
// handler is the backstop for mistakes.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("audit complete",
//	    "password", "hunter2",  // Will be sanitized to "***REDACTED***"
//	    "total_redactions", 4,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
