package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen to make unconfigured runs safe: conservative
// timeouts for the breach API and alert thresholds that surface risky
// documents early.
const (
	// DefaultListenAddr is the address the audit server binds to.
	// We bind to the loopback interface by default because the server
	// receives raw document content and passwords; exposing it beyond
	// the local host is an explicit operator decision.
	DefaultListenAddr = "127.0.0.1:8317"

	// DefaultBreachTimeout bounds each breach range query. The range API
	// normally answers in well under a second, so 5 seconds is generous
	// while still failing fast when the network is down.
	DefaultBreachTimeout = 5 * time.Second

	// DefaultBreachBaseURL is the k-anonymity range endpoint of the
	// public breach corpus. Only the first 5 characters of a SHA-1
	// digest are ever sent to it.
	DefaultBreachBaseURL = "https://api.pwnedpasswords.com/range/"

	// DefaultAlertThreshold is the redaction count above which a single
	// audit raises a live alert. More than 5 matches in one document is
	// a strong signal of a credential dump rather than an incidental
	// mention.
	DefaultAlertThreshold = 5

	// DefaultConcurrency is the number of files audited concurrently in
	// batch mode. Audits are CPU-light regex work, so 10 keeps a large
	// batch moving without starving the rest of the process.
	DefaultConcurrency = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "phantomscan"

	// DefaultUserAgent identifies PhantomScan in breach API requests.
	// The range API requires a User-Agent, and a descriptive one lets
	// operators identify our traffic in their logs.
	DefaultUserAgent = "PhantomScan/1.0 (+https://github.com/phantomsec/phantomscan)"

	// DefaultMaxRequestBody limits the size of documents accepted over
	// the HTTP API. 10MB covers any plausible text document while
	// preventing memory exhaustion from unexpectedly large uploads.
	DefaultMaxRequestBody = 10 * 1024 * 1024 // 10MB
)

// Config holds all configuration options for PhantomScan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., AuditConfig, ServerConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// ListenAddr is the "host:port" address for the audit server.
	// Only used by the serve command.
	ListenAddr string

	// BreachBaseURL is the base URL of the breach range API.
	// Overridable for testing against a local stub.
	BreachBaseURL string

	// BreachTimeout is the timeout for each breach range query.
	// This applies to individual requests, not the overall run.
	BreachTimeout time.Duration

	// AlertThreshold is the redaction count above which an audit raises
	// a live alert. This is independent of the archival risk tiers,
	// which are fixed classification boundaries.
	AlertThreshold int

	// Concurrency is the number of files audited concurrently when
	// processing multiple targets. Higher values increase throughput
	// but raise memory usage since each file is read whole.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .phantomscan in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds custom detection patterns and overrides loaded
	// from the config file. This is populated by LoadConfigFile and
	// used when building the entity matcher.
	FileConfig *File

	// JSONReport enables JSON report output instead of human-readable format.
	// When true, outputs the full audit report as JSON.
	// When false, outputs a human-readable simple report (default).
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// When true, outputs GitHub Flavored Markdown with tables and alerts.
	// When false, outputs a human-readable simple report (default).
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Targets is the list of files to audit.
	// Must contain at least one path for the audit command.
	Targets []string

	// ArchiveDir is the directory path for storing the SQLite archive.
	// When set, audit summaries are saved for historical review.
	// When empty, audit runs are not persisted.
	// Defaults to the XDG data directory (~/.local/share/phantomscan on Linux).
	ArchiveDir string

	// SaveToArchive indicates whether to save audit summaries to the archive.
	// This is automatically set to true when ArchiveDir is configured.
	SaveToArchive bool

	// UserAgent is the User-Agent header sent with breach API requests.
	UserAgent string

	// MaxRequestBody is the maximum HTTP request body size in bytes the
	// server accepts. Set to 0 to use the default (10MB).
	MaxRequestBody int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, thresholds).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ListenAddr:     DefaultListenAddr,
		BreachBaseURL:  DefaultBreachBaseURL,
		BreachTimeout:  DefaultBreachTimeout,
		AlertThreshold: DefaultAlertThreshold,
		Concurrency:    DefaultConcurrency,
		UserAgent:      DefaultUserAgent,
		MaxRequestBody: DefaultMaxRequestBody,
	}
}

// XDGDataDir returns the XDG data directory for PhantomScan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/phantomscan
// On macOS: ~/Library/Application Support/phantomscan
// On Windows: %LOCALAPPDATA%\phantomscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for PhantomScan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/phantomscan
// On macOS: ~/Library/Application Support/phantomscan
// On Windows: %APPDATA%\phantomscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid for the audit command.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any auditing begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// The audit command must have at least one target file
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	return c.validateShared()
}

// ValidateServe checks if the configuration is valid for the serve
// command, which audits request bodies rather than file targets.
func (c *Config) ValidateServe() error {
	// The server needs an address to bind
	if c.ListenAddr == "" {
		return ErrNoListenAddr
	}

	return c.validateShared()
}

// validateShared checks the settings every command depends on.
func (c *Config) validateShared() error {
	// BreachTimeout must be positive; zero would fail every request
	if c.BreachTimeout <= 0 {
		return ErrInvalidTimeout
	}

	// Concurrency must be positive; zero would mean no auditing
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// AlertThreshold must be positive; see model.ExceedsAlertThreshold
	if c.AlertThreshold <= 0 {
		return ErrInvalidAlertThreshold
	}

	// MaxRequestBody must be non-negative; 0 means use the default
	if c.MaxRequestBody < 0 {
		return ErrInvalidMaxRequestBody
	}

	return nil
}
