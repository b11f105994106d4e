package password

import (
	"strings"
	"testing"
	"unicode"
)

// TestScoreLabel tests the score-to-label mapping.
func TestScoreLabel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score    int
		expected string
	}{
		{0, "Very Weak"},
		{1, "Weak"},
		{2, "Fair"},
		{3, "Strong"},
		{4, "Very Strong"},
		{-1, "Unknown"},
		{5, "Unknown"},
	}

	for _, tc := range testCases {
		if got := ScoreLabel(tc.score); got != tc.expected {
			t.Errorf("ScoreLabel(%d) = %q, expected %q", tc.score, got, tc.expected)
		}
	}
}

// TestAnalyzeStrengthCharacterClasses tests structural detection.
func TestAnalyzeStrengthCharacterClasses(t *testing.T) {
	t.Parallel()

	s := AnalyzeStrength("Abc123!x")

	if !s.HasUppercase || !s.HasLowercase || !s.HasDigits || !s.HasSpecial {
		t.Errorf("character classes misdetected: %+v", s)
	}
	if s.Length != 8 {
		t.Errorf("Length = %d, expected 8", s.Length)
	}

	digitsOnly := AnalyzeStrength("12345678")
	if digitsOnly.HasUppercase || digitsOnly.HasLowercase || digitsOnly.HasSpecial {
		t.Errorf("digit-only password misdetected: %+v", digitsOnly)
	}
	if !digitsOnly.HasDigits {
		t.Error("digits not detected")
	}
}

// TestAnalyzeStrengthEmpty tests the empty password edge case.
func TestAnalyzeStrengthEmpty(t *testing.T) {
	t.Parallel()

	s := AnalyzeStrength("")
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
	if s.Label != "Very Weak" {
		t.Errorf("Label = %q", s.Label)
	}
}

// TestAnalyzeStrengthOrdering tests that obviously weak passwords score
// below obviously strong ones.
func TestAnalyzeStrengthOrdering(t *testing.T) {
	t.Parallel()

	weak := AnalyzeStrength("password")
	strong := AnalyzeStrength("X9$mK#pL2@qR5nT8vW")

	if weak.Score >= strong.Score {
		t.Errorf("weak score %d >= strong score %d", weak.Score, strong.Score)
	}
	if weak.Score > 1 {
		t.Errorf("dictionary word scored %d, expected at most 1", weak.Score)
	}
	if strong.Score < 3 {
		t.Errorf("random password scored %d, expected at least 3", strong.Score)
	}
}

// TestSuggestImprovements tests suggestions for a weak password.
func TestSuggestImprovements(t *testing.T) {
	t.Parallel()

	suggestions := SuggestImprovements("pass")

	if len(suggestions) == 0 {
		t.Fatal("expected suggestions for a weak password")
	}

	joined := strings.Join(suggestions, "\n")
	for _, want := range []string{
		"Increase length to at least 12 characters",
		"Add uppercase letters",
		"Add numbers",
		"Add special characters",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("suggestions missing %q: %v", want, suggestions)
		}
	}
	if strings.Contains(joined, "Add lowercase letters") {
		t.Errorf("unexpected lowercase suggestion: %v", suggestions)
	}
}

// TestSuggestImprovementsStrongPassword tests that strong passwords get none.
func TestSuggestImprovementsStrongPassword(t *testing.T) {
	t.Parallel()

	if suggestions := SuggestImprovements("X9$mK#pL2@qR5nT8vW"); len(suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", suggestions)
	}
}

// TestGenerate tests generated password structure.
func TestGenerate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		length         int
		includeSymbols bool
		expectedLen    int
	}{
		{"default length with symbols", 16, true, 16},
		{"long without symbols", 20, false, 20},
		{"short request raised to minimum", 4, true, MinLength},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			pwd, err := Generate(tc.length, tc.includeSymbols)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(pwd) != tc.expectedLen {
				t.Errorf("length = %d, expected %d", len(pwd), tc.expectedLen)
			}

			s := AnalyzeStrength(pwd)
			if !s.HasLowercase || !s.HasUppercase || !s.HasDigits {
				t.Errorf("generated password missing required classes: %+v", s)
			}
			if tc.includeSymbols && !s.HasSpecial {
				t.Error("generated password missing symbols")
			}
			if !tc.includeSymbols && s.HasSpecial {
				t.Error("generated password contains symbols unexpectedly")
			}
		})
	}
}

// TestGenerateUnique tests that consecutive generations differ.
func TestGenerateUnique(t *testing.T) {
	t.Parallel()

	a, err := Generate(16, true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(16, true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a == b {
		t.Error("two generated passwords are identical")
	}
}

// TestGeneratePassphrase tests passphrase structure.
func TestGeneratePassphrase(t *testing.T) {
	t.Parallel()

	phrase, err := GeneratePassphrase(4)
	if err != nil {
		t.Fatalf("GeneratePassphrase: %v", err)
	}

	parts := strings.Split(phrase, "-")
	if len(parts) != 4 {
		t.Fatalf("got %d words, expected 4: %q", len(parts), phrase)
	}
	for i, p := range parts {
		if p == "" || !unicode.IsUpper(rune(p[0])) {
			t.Errorf("word %d not capitalized: %q", i, p)
		}
	}
	// The final word carries the trailing number.
	last := parts[len(parts)-1]
	if !strings.ContainsAny(last, "0123456789") {
		t.Errorf("passphrase missing trailing number: %q", phrase)
	}
}

// TestGeneratePassphraseMinimumWords tests the word count floor.
func TestGeneratePassphraseMinimumWords(t *testing.T) {
	t.Parallel()

	phrase, err := GeneratePassphrase(1)
	if err != nil {
		t.Fatalf("GeneratePassphrase: %v", err)
	}
	if got := len(strings.Split(phrase, "-")); got != 3 {
		t.Errorf("got %d words, expected minimum 3: %q", got, phrase)
	}
}

// TestRecommendWeakPassword tests that weak passwords get alternatives.
func TestRecommendWeakPassword(t *testing.T) {
	t.Parallel()

	rec, err := Recommend("password123")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if !rec.NeedsImprovement {
		t.Error("expected NeedsImprovement for a dictionary password")
	}
	if len(rec.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
	if len(rec.Alternatives) != 3 {
		t.Fatalf("got %d alternatives, expected 3", len(rec.Alternatives))
	}

	types := map[string]bool{}
	for _, alt := range rec.Alternatives {
		types[alt.Type] = true
		if alt.Password == "" {
			t.Errorf("alternative %q has empty password", alt.Type)
		}
	}
	for _, want := range []string{"random", "passphrase", "long_random"} {
		if !types[want] {
			t.Errorf("missing alternative type %q", want)
		}
	}
}

// TestRecommendStrongPassword tests that strong passwords get no alternatives.
func TestRecommendStrongPassword(t *testing.T) {
	t.Parallel()

	rec, err := Recommend("X9$mK#pL2@qR5nT8vW")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if rec.NeedsImprovement {
		t.Error("strong password flagged for improvement")
	}
	if len(rec.Alternatives) != 0 {
		t.Errorf("unexpected alternatives: %v", rec.Alternatives)
	}
}
