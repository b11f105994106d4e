package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phantomsec/phantomscan/internal/model"
)

// TestNewConfigDefaults tests that the constructor applies documented defaults.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()

	if c.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, expected %q", c.ListenAddr, DefaultListenAddr)
	}
	if c.BreachBaseURL != DefaultBreachBaseURL {
		t.Errorf("BreachBaseURL = %q, expected %q", c.BreachBaseURL, DefaultBreachBaseURL)
	}
	if c.BreachTimeout != DefaultBreachTimeout {
		t.Errorf("BreachTimeout = %v, expected %v", c.BreachTimeout, DefaultBreachTimeout)
	}
	if c.AlertThreshold != DefaultAlertThreshold {
		t.Errorf("AlertThreshold = %d, expected %d", c.AlertThreshold, DefaultAlertThreshold)
	}
	if c.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, expected %d", c.Concurrency, DefaultConcurrency)
	}
	if c.SaveToArchive {
		t.Error("SaveToArchive should default to false")
	}
}

// TestValidate tests configuration validation with specific errors.
func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		c := NewConfig()
		c.Targets = []string{"notes.txt"}
		return c
	}

	testCases := []struct {
		name     string
		mutate   func(*Config)
		expected error
	}{
		{
			name:     "valid config",
			mutate:   func(*Config) {},
			expected: nil,
		},
		{
			name:     "no target",
			mutate:   func(c *Config) { c.Targets = nil },
			expected: ErrNoTarget,
		},
		{
			name:     "zero timeout",
			mutate:   func(c *Config) { c.BreachTimeout = 0 },
			expected: ErrInvalidTimeout,
		},
		{
			name:     "negative timeout",
			mutate:   func(c *Config) { c.BreachTimeout = -time.Second },
			expected: ErrInvalidTimeout,
		},
		{
			name:     "zero concurrency",
			mutate:   func(c *Config) { c.Concurrency = 0 },
			expected: ErrInvalidConcurrency,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			expected: ErrConflictingReportFormats,
		},
		{
			name:     "negative alert threshold",
			mutate:   func(c *Config) { c.AlertThreshold = -1 },
			expected: ErrInvalidAlertThreshold,
		},
		{
			name:     "zero alert threshold",
			mutate:   func(c *Config) { c.AlertThreshold = 0 },
			expected: ErrInvalidAlertThreshold,
		},
		{
			name:     "negative max request body",
			mutate:   func(c *Config) { c.MaxRequestBody = -1 },
			expected: ErrInvalidMaxRequestBody,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tc.mutate(c)
			err := c.Validate()
			if !errors.Is(err, tc.expected) {
				t.Errorf("Validate() = %v, expected %v", err, tc.expected)
			}
		})
	}
}

// TestValidateServe tests serve-command validation, which has no file
// targets to require.
func TestValidateServe(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(*Config)
		expected error
	}{
		{
			name:     "default config without targets is valid",
			mutate:   func(*Config) {},
			expected: nil,
		},
		{
			name:     "empty listen address",
			mutate:   func(c *Config) { c.ListenAddr = "" },
			expected: ErrNoListenAddr,
		},
		{
			name:     "zero timeout",
			mutate:   func(c *Config) { c.BreachTimeout = 0 },
			expected: ErrInvalidTimeout,
		},
		{
			name:     "zero alert threshold",
			mutate:   func(c *Config) { c.AlertThreshold = 0 },
			expected: ErrInvalidAlertThreshold,
		},
		{
			name:     "negative max request body",
			mutate:   func(c *Config) { c.MaxRequestBody = -1 },
			expected: ErrInvalidMaxRequestBody,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := NewConfig()
			tc.mutate(c)
			err := c.ValidateServe()
			if !errors.Is(err, tc.expected) {
				t.Errorf("ValidateServe() = %v, expected %v", err, tc.expected)
			}
		})
	}
}

// TestLoadConfigFile tests loading custom patterns from YAML.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	content := `
patterns:
  - category: Other
    pattern: '\bBADGE-\d{4}\b'
    confidence: 0.9
  - category: Credential
    pattern: '\btoken\s+\S+'
alertThreshold: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	rules, err := cf.Rules()
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, expected 2", len(rules))
	}
	if rules[0].Category != model.CategoryOther || rules[0].Confidence != 0.9 {
		t.Errorf("rule 0 = %+v", rules[0])
	}
	// Unset confidence gets the default.
	if rules[1].Confidence != defaultPatternConfidence {
		t.Errorf("rule 1 confidence = %v, expected %v", rules[1].Confidence, defaultPatternConfidence)
	}

	c := NewConfig()
	cf.Apply(c)
	if c.AlertThreshold != 3 {
		t.Errorf("AlertThreshold after Apply = %d, expected 3", c.AlertThreshold)
	}
}

// TestLoadConfigFileNotFound tests the sentinel for a missing file.
func TestLoadConfigFileNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}
}

// TestLoadConfigFileInvalid tests rejection of malformed files.
func TestLoadConfigFileInvalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{
			name:    "not yaml",
			content: "{{{",
		},
		{
			name: "unknown category",
			content: `
patterns:
  - category: SocialSecurity
    pattern: '\d+'
`,
		},
		{
			name: "empty pattern",
			content: `
patterns:
  - category: Other
    pattern: ""
`,
		},
		{
			name: "confidence out of range",
			content: `
patterns:
  - category: Other
    pattern: '\d+'
    confidence: 1.5
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), DefaultConfigFile)
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			if _, err := LoadConfigFile(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestFileApplyLeavesUnsetFields tests that Apply only overrides declared values.
func TestFileApplyLeavesUnsetFields(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	(&File{}).Apply(c)
	if c.AlertThreshold != DefaultAlertThreshold {
		t.Errorf("AlertThreshold = %d, expected default %d", c.AlertThreshold, DefaultAlertThreshold)
	}

	zero := 0
	(&File{AlertThreshold: &zero}).Apply(c)
	if c.AlertThreshold != DefaultAlertThreshold {
		t.Errorf("zero threshold should be ignored, got %d", c.AlertThreshold)
	}
}

// TestFindConfigFile tests explicit path resolution.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte("patterns: []\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if found := FindConfigFile(path); found != path {
		t.Errorf("FindConfigFile(%q) = %q", path, found)
	}
	if found := FindConfigFile(filepath.Join(dir, "missing")); found != "" {
		t.Errorf("expected empty result for missing explicit path, got %q", found)
	}
}

// TestXDGDataDir tests that the data directory ends with the app name.
func TestXDGDataDir(t *testing.T) {
	t.Parallel()

	if got := XDGDataDir(); filepath.Base(got) != AppName {
		t.Errorf("XDGDataDir() = %q, expected it to end with %q", got, AppName)
	}
}
