package model

// EntityCategory classifies a sensitive-data match.
// The set is closed: each category has exactly one detector and exactly
// one mask template. New categories require a detector, a mask template,
// and a priority entry.
type EntityCategory string

const (
	// CategoryCredential covers labeled passwords and secrets
	// ("password: hunter2", "secret=...").
	CategoryCredential EntityCategory = "Credential"

	// CategoryAPIKey covers key/value-shaped API keys and access tokens.
	CategoryAPIKey EntityCategory = "ApiKey"

	// CategoryBankAccount covers credit card numbers and labeled
	// account/routing numbers.
	CategoryBankAccount EntityCategory = "BankAccount"

	// CategoryNationalID covers government identifiers such as US SSNs.
	CategoryNationalID EntityCategory = "NationalId"

	// CategoryEmailAddress covers email addresses.
	CategoryEmailAddress EntityCategory = "EmailAddress"

	// CategoryPhoneNumber covers phone numbers.
	CategoryPhoneNumber EntityCategory = "PhoneNumber"

	// CategoryOther covers remaining identifiers (bare IPv4 addresses).
	CategoryOther EntityCategory = "Other"
)

// Categories lists all entity categories in priority order, highest first.
// The order is part of the overlap-resolution contract: when two raw hits
// of equal length overlap, the earlier category in this list wins.
var Categories = []EntityCategory{
	CategoryCredential,
	CategoryAPIKey,
	CategoryBankAccount,
	CategoryNationalID,
	CategoryEmailAddress,
	CategoryPhoneNumber,
	CategoryOther,
}

// categoryPriority maps categories to their rank. Lower is higher priority.
var categoryPriority = func() map[EntityCategory]int {
	m := make(map[EntityCategory]int, len(Categories))
	for i, c := range Categories {
		m[c] = i
	}
	return m
}()

// Priority returns the overlap-resolution rank of the category.
// Lower values win ties. Unknown categories rank below all known ones.
func (c EntityCategory) Priority() int {
	if p, ok := categoryPriority[c]; ok {
		return p
	}
	return len(Categories)
}

// String returns the category name as used in mask tokens and JSON output.
func (c EntityCategory) String() string {
	return string(c)
}

// ParseCategory converts a category name from configuration or storage
// back to its constant. The second return value reports whether the name
// is a known category.
func ParseCategory(name string) (EntityCategory, bool) {
	c := EntityCategory(name)
	_, ok := categoryPriority[c]
	return c, ok
}
