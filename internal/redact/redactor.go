package redact

import (
	"strings"

	"github.com/phantomsec/phantomscan/internal/model"
)

// maskTemplates holds the fixed mask token per entity category.
// Tokens are constant per category: no part of the original value, not
// even its length, survives into the output.
var maskTemplates = map[model.EntityCategory]string{
	model.CategoryCredential:   "[REDACTED:Credential]",
	model.CategoryAPIKey:       "[REDACTED:ApiKey]",
	model.CategoryBankAccount:  "[REDACTED:BankAccount]",
	model.CategoryNationalID:   "[REDACTED:NationalId]",
	model.CategoryEmailAddress: "[REDACTED:EmailAddress]",
	model.CategoryPhoneNumber:  "[REDACTED:PhoneNumber]",
	model.CategoryOther:        "[REDACTED:Other]",
}

// fallbackMask is used for categories without a registered template,
// which only happens for custom categories added in tests.
const fallbackMask = "[REDACTED]"

// MaskFor returns the mask token for a category.
func MaskFor(category model.EntityCategory) string {
	if mask, ok := maskTemplates[category]; ok {
		return mask
	}
	return fallbackMask
}

// Redact rewrites text in one left-to-right pass, copying unmatched spans
// verbatim and replacing each match with its category mask token. Matches
// must be non-overlapping and sorted ascending by start, which is exactly
// what the detector's Matcher produces.
//
// The returned summary counts one redaction per consumed match, so
// summary.TotalRedactions always equals len(matches). With no matches the
// text is returned unchanged.
func Redact(text string, matches []model.Match) (string, model.RedactionSummary) {
	summary := model.NewRedactionSummary()
	if len(matches) == 0 {
		return text, summary
	}

	var builder strings.Builder
	last := 0
	for _, m := range matches {
		if m.Start < last || m.End > len(text) || m.Start >= m.End {
			// Malformed match sequence. Skip rather than corrupt the
			// output; the detector contract makes this unreachable.
			continue
		}
		builder.WriteString(text[last:m.Start])
		builder.WriteString(MaskFor(m.Category))
		summary.Add(m.Category)
		last = m.End
	}
	builder.WriteString(text[last:])

	return builder.String(), summary
}
