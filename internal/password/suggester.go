package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// Length policy for generated and analyzed passwords.
const (
	// MinLength is the shortest acceptable password length.
	MinLength = 12

	// RecommendedLength is the default length for generated passwords.
	RecommendedLength = 16
)

// symbolChars are the special characters used in generation and detected
// during analysis.
const symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?"

// Strength is the structural and statistical analysis of one password.
// It carries no copy of the password itself.
type Strength struct {
	// Score is the zxcvbn score from 0 (trivially guessable) to 4.
	Score int `json:"score"`

	// Label is the human-readable strength label for Score.
	Label string `json:"strength"`

	// CrackTime describes the estimated offline crack time.
	CrackTime string `json:"crack_time"`

	// Length is the password length in bytes.
	Length int `json:"length"`

	// HasUppercase, HasLowercase, HasDigits, and HasSpecial report which
	// character classes the password contains.
	HasUppercase bool `json:"has_uppercase"`
	HasLowercase bool `json:"has_lowercase"`
	HasDigits    bool `json:"has_digits"`
	HasSpecial   bool `json:"has_special"`
}

// strengthLabels maps zxcvbn scores to display labels.
var strengthLabels = [...]string{
	"Very Weak",
	"Weak",
	"Fair",
	"Strong",
	"Very Strong",
}

// ScoreLabel returns the display label for a zxcvbn score.
func ScoreLabel(score int) string {
	if score < 0 || score >= len(strengthLabels) {
		return "Unknown"
	}
	return strengthLabels[score]
}

// AnalyzeStrength scores a password with zxcvbn and reports its
// structural properties.
func AnalyzeStrength(password string) Strength {
	s := Strength{
		Length: len(password),
		Label:  ScoreLabel(0),
	}

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			s.HasUppercase = true
		case unicode.IsLower(r):
			s.HasLowercase = true
		case unicode.IsDigit(r):
			s.HasDigits = true
		case strings.ContainsRune(symbolChars, r):
			s.HasSpecial = true
		}
	}

	if password == "" {
		s.CrackTime = "instant"
		return s
	}

	result := zxcvbn.PasswordStrength(password, nil)
	s.Score = result.Score
	s.Label = ScoreLabel(result.Score)
	s.CrackTime = result.CrackTimeDisplay
	return s
}

// SuggestImprovements lists concrete changes that would strengthen a weak
// password. Passwords scoring 3 or better get no suggestions.
func SuggestImprovements(password string) []string {
	analysis := AnalyzeStrength(password)
	if analysis.Score >= 3 {
		return nil
	}

	var suggestions []string
	if analysis.Length < MinLength {
		suggestions = append(suggestions,
			fmt.Sprintf("Increase length to at least %d characters", MinLength))
	}
	if !analysis.HasUppercase {
		suggestions = append(suggestions, "Add uppercase letters")
	}
	if !analysis.HasLowercase {
		suggestions = append(suggestions, "Add lowercase letters")
	}
	if !analysis.HasDigits {
		suggestions = append(suggestions, "Add numbers")
	}
	if !analysis.HasSpecial {
		suggestions = append(suggestions, "Add special characters (!@#$%^&*)")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"Avoid dictionary words, keyboard patterns, and reused passwords")
	}
	return suggestions
}

// Generate creates a cryptographically secure random password.
// Lengths below MinLength are raised to MinLength. The result always
// contains lowercase, uppercase, and digit characters, and a symbol when
// includeSymbols is true.
func Generate(length int, includeSymbols bool) (string, error) {
	if length < MinLength {
		length = MinLength
	}

	chars := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	if includeSymbols {
		chars += symbolChars
	}

	// Rejection sampling: regenerate until all required character
	// classes are present. With length >= 12 the expected number of
	// attempts is close to one.
	for {
		b := make([]byte, length)
		for i := range b {
			idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
			if err != nil {
				return "", fmt.Errorf("failed to generate password: %w", err)
			}
			b[i] = chars[idx.Int64()]
		}

		candidate := string(b)
		analysis := AnalyzeStrength(candidate)
		if analysis.HasLowercase && analysis.HasUppercase && analysis.HasDigits &&
			(!includeSymbols || analysis.HasSpecial) {
			return candidate, nil
		}
	}
}

// passphraseWords is the word pool for generated passphrases.
var passphraseWords = []string{
	"correct", "horse", "battery", "staple", "mountain", "river",
	"sunset", "ocean", "forest", "thunder", "crystal", "phoenix",
	"dragon", "wizard", "castle", "knight", "galaxy", "nebula",
	"quantum", "cipher", "enigma", "paradox", "zenith", "aurora",
}

// GeneratePassphrase creates a memorable passphrase of capitalized words
// joined with dashes, followed by a random number.
func GeneratePassphrase(wordCount int) (string, error) {
	if wordCount < 3 {
		wordCount = 3
	}

	words := make([]string, wordCount)
	for i := range words {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(passphraseWords))))
		if err != nil {
			return "", fmt.Errorf("failed to generate passphrase: %w", err)
		}
		w := passphraseWords[idx.Int64()]
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to generate passphrase: %w", err)
	}

	return strings.Join(words, "-") + n.String(), nil
}

// Alternative is one generated replacement password.
type Alternative struct {
	// Type identifies the generation strategy ("random", "passphrase",
	// "long_random").
	Type string `json:"type"`

	// Password is the generated value.
	Password string `json:"password"`

	// Description explains the alternative to the user.
	Description string `json:"description"`
}

// Recommendation bundles an analysis with improvement suggestions and,
// for weak passwords, generated alternatives.
type Recommendation struct {
	// Strength is the analysis of the evaluated password.
	Strength Strength `json:"current_password"`

	// NeedsImprovement is true when the score is below 3.
	NeedsImprovement bool `json:"needs_improvement"`

	// Suggestions are concrete changes that would strengthen the password.
	Suggestions []string `json:"suggestions"`

	// Alternatives are generated replacements, present only when the
	// password needs improvement.
	Alternatives []Alternative `json:"alternative_passwords"`
}

// Recommend evaluates a password and, when it is weak, generates
// replacement candidates.
func Recommend(password string) (*Recommendation, error) {
	analysis := AnalyzeStrength(password)

	rec := &Recommendation{
		Strength:         analysis,
		NeedsImprovement: analysis.Score < 3,
		Suggestions:      SuggestImprovements(password),
	}

	if !rec.NeedsImprovement {
		return rec, nil
	}

	random, err := Generate(RecommendedLength, true)
	if err != nil {
		return nil, err
	}
	passphrase, err := GeneratePassphrase(4)
	if err != nil {
		return nil, err
	}
	longRandom, err := Generate(20, true)
	if err != nil {
		return nil, err
	}

	rec.Alternatives = []Alternative{
		{Type: "random", Password: random, Description: "16-character random password"},
		{Type: "passphrase", Password: passphrase, Description: "Memorable passphrase"},
		{Type: "long_random", Password: longRandom, Description: "20-character maximum security"},
	}
	return rec, nil
}
