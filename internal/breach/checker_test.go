package breach

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"
)

// TestDigestParts tests the digest split against a known SHA-1 vector.
func TestDigestParts(t *testing.T) {
	t.Parallel()

	// SHA-1("password") = 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8
	prefix, suffix := digestParts("password")

	if prefix != "5BAA6" {
		t.Errorf("prefix = %q, expected 5BAA6", prefix)
	}
	if suffix != "1E4C9B93F3F0682250B6CF8331B7EE68FD8" {
		t.Errorf("suffix = %q", suffix)
	}
	if len(prefix) != 5 || len(suffix) != 35 {
		t.Errorf("split lengths = %d/%d, expected 5/35", len(prefix), len(suffix))
	}
}

// TestCheckBreached tests a lookup whose suffix appears in the mocked
// candidate list.
func TestCheckBreached(t *testing.T) {
	t.Parallel()

	password := "MySecretPass123"
	prefix, suffix := digestParts(password)

	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		fmt.Fprintf(w, "0000000000000000000000000000000000A:12\r\n")
		fmt.Fprintf(w, "%s:4521\r\n", strings.ToLower(suffix)) // case-insensitive match
		fmt.Fprintf(w, "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF:3\r\n")
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL + "/range/"))
	result, err := checker.Check(context.Background(), password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Breached {
		t.Error("expected breached = true")
	}
	if result.OccurrenceCount != 4521 {
		t.Errorf("occurrence count = %d, expected 4521", result.OccurrenceCount)
	}

	// The network payload is exactly the 5-character prefix, never the
	// full digest.
	if got := strings.TrimPrefix(requestedPath, "/range/"); got != prefix {
		t.Errorf("requested %q, expected prefix %q", got, prefix)
	}
	if matched, _ := regexp.MatchString(`^[0-9A-F]{5}$`, strings.TrimPrefix(requestedPath, "/range/")); !matched {
		t.Errorf("request path %q is not 5 uppercase hex characters", requestedPath)
	}
	if strings.Contains(requestedPath, suffix) {
		t.Error("full digest suffix leaked into the request")
	}
}

// TestCheckNotBreached tests a lookup with no matching candidate.
func TestCheckNotBreached(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "0000000000000000000000000000000000A:12\r\n")
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL + "/range/"))
	result, err := checker.Check(context.Background(), "correcthorsebatterystaple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Breached {
		t.Error("expected breached = false")
	}
	if result.OccurrenceCount != 0 {
		t.Errorf("occurrence count = %d, expected 0", result.OccurrenceCount)
	}
}

// TestCheckEmptyBody tests that an empty candidate list is a valid
// "not breached" answer.
func TestCheckEmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL + "/range/"))
	result, err := checker.Check(context.Background(), "correcthorsebatterystaple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Breached || result.OccurrenceCount != 0 {
		t.Errorf("result = %+v, expected not breached", result)
	}
}

// TestCheckUpstreamError tests non-success status handling.
func TestCheckUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL + "/range/"))
	_, err := checker.Check(context.Background(), "anything")

	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("upstream error must not also classify as network error")
	}
}

// TestCheckMalformedPayload tests that malformed candidate lines surface
// as upstream errors.
func TestCheckMalformedPayload(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		body string
	}{
		{"missing separator", "NOTAVALIDLINE\r\n"},
		{"wrong suffix length", "ABC:3\r\n"},
		{"non-numeric count", "0000000000000000000000000000000000A:lots\r\n"},
		{"negative count", "0000000000000000000000000000000000A:-7\r\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tc.body)
			}))
			defer server.Close()

			checker := NewChecker(WithBaseURL(server.URL + "/range/"))
			_, err := checker.Check(context.Background(), "anything")
			if !errors.Is(err, ErrUpstream) {
				t.Errorf("expected ErrUpstream, got %v", err)
			}
		})
	}
}

// TestCheckNetworkError tests that connection failures classify as
// network errors.
func TestCheckNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // Immediately close so connections are refused.

	checker := NewChecker(WithBaseURL(server.URL + "/range/"))
	_, err := checker.Check(context.Background(), "anything")

	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

// TestCheckCancellation tests that a canceled context aborts the in-flight
// request.
func TestCheckCancellation(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	checker := NewChecker(WithBaseURL(server.URL + "/range/"))
	_, err := checker.Check(ctx, "anything")

	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork on cancellation, got %v", err)
	}
}

// TestCheckTimeout tests the bounded-wait mandate.
func TestCheckTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	checker := NewChecker(
		WithBaseURL(server.URL+"/range/"),
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
	)

	start := time.Now()
	_, err := checker.Check(context.Background(), "anything")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork on timeout, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("lookup did not respect the client timeout")
	}
}

// TestCheckEmptyPassword tests input validation.
func TestCheckEmptyPassword(t *testing.T) {
	t.Parallel()

	checker := NewChecker()
	if _, err := checker.Check(context.Background(), ""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

// TestCheckErrorsAreContentFree tests that error text never includes the
// password or its digest.
func TestCheckErrorsAreContentFree(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	password := "Sup3rSecretValue"
	prefix, suffix := digestParts(password)

	checker := NewChecker(WithBaseURL(server.URL + "/range/"))
	_, err := checker.Check(context.Background(), password)
	if err == nil {
		t.Fatal("expected error")
	}

	text := err.Error()
	if strings.Contains(text, password) {
		t.Error("error text contains the password")
	}
	if strings.Contains(text, prefix+suffix) {
		t.Error("error text contains the full digest")
	}
	if strings.Contains(text, suffix) {
		t.Error("error text contains the digest suffix")
	}
}

// TestResultRiskLevel tests the occurrence-count bands.
func TestResultRiskLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		result   Result
		expected string
	}{
		{"not breached", Result{}, "LOW"},
		{"breached few", Result{Breached: true, OccurrenceCount: 12}, "MEDIUM"},
		{"boundary 10000 is medium", Result{Breached: true, OccurrenceCount: 10000}, "MEDIUM"},
		{"above 10k is high", Result{Breached: true, OccurrenceCount: 10001}, "HIGH"},
		{"boundary 100000 is high", Result{Breached: true, OccurrenceCount: 100000}, "HIGH"},
		{"above 100k is critical", Result{Breached: true, OccurrenceCount: 100001}, "CRITICAL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.result.RiskLevel(); got != tc.expected {
				t.Errorf("RiskLevel = %q, expected %q", got, tc.expected)
			}
			if tc.result.Recommendation() == "" {
				t.Error("recommendation must not be empty")
			}
		})
	}
}
