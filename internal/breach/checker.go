package breach

import (
	"bufio"
	"context"
	"crypto/sha1" //nolint:gosec // The range protocol is defined over SHA-1; not used for integrity.
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Protocol constants. The digest algorithm and prefix length are fixed by
// the range protocol the breach corpus indexes by; they are not
// configurable.
const (
	// prefixLen is the number of leading hex characters sent upstream.
	prefixLen = 5

	// digestLen is the length of an uppercase hex SHA-1 digest.
	digestLen = 40

	// DefaultBaseURL is the public range endpoint of the Pwned Passwords
	// corpus.
	DefaultBaseURL = "https://api.pwnedpasswords.com/range/"

	// DefaultTimeout bounds a single lookup. The protocol mandates a
	// bounded wait; a few seconds is generous for a single range query.
	DefaultTimeout = 5 * time.Second

	// maxResponseSize caps the candidate list we read. Real range
	// responses are tens of kilobytes; 4MB tolerates corpus growth while
	// preventing memory exhaustion from a misbehaving upstream.
	maxResponseSize = 4 * 1024 * 1024
)

// Result is the outcome of one breach lookup.
type Result struct {
	// Breached is true when the password's digest appeared in the corpus.
	Breached bool `json:"breached"`

	// OccurrenceCount is the number of times the corpus has seen the
	// password. Zero when Breached is false.
	OccurrenceCount int `json:"occurrence_count"`
}

// RiskLevel classifies the occurrence count into advisory bands.
// Thresholds follow the occurrence-count bands used for password
// recommendations: >100k is critical, >10k is high, any other breach is
// medium, and no breach is low.
func (r Result) RiskLevel() string {
	switch {
	case !r.Breached:
		return "LOW"
	case r.OccurrenceCount > 100000:
		return "CRITICAL"
	case r.OccurrenceCount > 10000:
		return "HIGH"
	default:
		return "MEDIUM"
	}
}

// Recommendation returns the advisory text for the result's risk level.
func (r Result) Recommendation() string {
	switch r.RiskLevel() {
	case "CRITICAL":
		return "This password has been seen in over 100k breaches. Change it immediately."
	case "HIGH":
		return "This password has been breached many times. Change it soon."
	case "MEDIUM":
		return "This password has been found in breaches. Consider changing it."
	default:
		return "No breaches found for this password."
	}
}

// Checker performs k-anonymity breach lookups. A Checker is safe for
// unbounded concurrent use; each call is independent.
type Checker struct {
	// client is the HTTP client used for range queries. Its timeout
	// bounds the only blocking operation in the package.
	client *http.Client

	// baseURL is the range endpoint; the digest prefix is appended.
	baseURL string

	// userAgent identifies this tool to the breach service.
	userAgent string

	// logger receives lookup telemetry. Prefixes are the only
	// digest-derived data ever logged.
	logger *slog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithHTTPClient sets a custom HTTP client. Useful for tests and for
// callers that manage their own transport or proxy.
func WithHTTPClient(client *http.Client) CheckerOption {
	return func(c *Checker) {
		if client != nil {
			c.client = client
		}
	}
}

// WithBaseURL overrides the range endpoint. Used by tests and by
// deployments that mirror the corpus internally.
func WithBaseURL(baseURL string) CheckerOption {
	return func(c *Checker) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithUserAgent sets the User-Agent header for range queries.
func WithUserAgent(userAgent string) CheckerOption {
	return func(c *Checker) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChecker creates a Checker with the default endpoint and timeout.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		client:    &http.Client{Timeout: DefaultTimeout},
		baseURL:   DefaultBaseURL,
		userAgent: "phantomscan (+https://github.com/phantomsec/phantomscan)",
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check reports whether password appears in the breach corpus.
//
// It computes the SHA-1 digest locally, sends only the first five hex
// characters upstream, and matches the remaining 35 characters against the
// returned candidate suffixes case-insensitively. Cancellation of ctx
// aborts the in-flight request; no state outlives the call.
func (c *Checker) Check(ctx context.Context, password string) (Result, error) {
	if password == "" {
		return Result{}, ErrEmptyPassword
	}

	prefix, suffix := digestParts(password)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+prefix, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: building request: %w", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		// The wrapped transport error never contains the digest: only
		// the 5-character prefix appears in the request URL.
		return Result{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	result, err := matchSuffix(io.LimitReader(resp.Body, maxResponseSize), suffix)
	if err != nil {
		return Result{}, err
	}

	c.logger.Debug("breach lookup completed",
		"prefix", prefix,
		"breached", result.Breached,
	)
	return result, nil
}

// digestParts returns the 5-character query prefix and 35-character local
// suffix of the password's uppercase hex SHA-1 digest.
func digestParts(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password)) //nolint:gosec // Fixed by the range protocol.
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:prefixLen], digest[prefixLen:]
}

// matchSuffix scans "SUFFIX:COUNT" candidate lines for the local suffix.
// Comparison is case-insensitive. A corpus that does not know the prefix
// may return an empty body, which is a valid "not breached" answer.
func matchSuffix(body io.Reader, suffix string) (Result, error) {
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		candidate, countText, ok := strings.Cut(line, ":")
		if !ok || len(candidate) != digestLen-prefixLen {
			return Result{}, fmt.Errorf("%w: malformed candidate line", ErrUpstream)
		}

		// Every line must carry a valid count, matching or not. A corpus
		// that emits garbage anywhere is not one to trust for a miss.
		count, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil || count < 0 {
			return Result{}, fmt.Errorf("%w: malformed occurrence count", ErrUpstream)
		}

		if strings.EqualFold(candidate, suffix) {
			return Result{Breached: true, OccurrenceCount: count}, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: reading candidate list: %w", ErrNetwork, err)
	}

	return Result{}, nil
}
