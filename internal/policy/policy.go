// Package policy holds input validation and log-redaction rules shared by the
// funnel runtime.
package policy

import (
	"regexp"
	"strings"
)

var (
	// Anchored variant used to validate a submitted address in full.
	emailExact = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?[0-9][0-9\-() ]{7,}[0-9]`)
	cardPattern  = regexp.MustCompile(`\b(?:\d[ -]*?){13,19}\b`)
)

// ValidEmail reports whether the trimmed input looks like local@domain.tld.
func ValidEmail(email string) bool {
	return emailExact.MatchString(strings.TrimSpace(email))
}

// RedactPII masks common high-risk PII patterns before conversation text is
// written to server logs. Card redaction runs before phone so card numbers are
// not classified as phone numbers.
func RedactPII(input string) (redacted string, changed bool) {
	out := input
	for _, rule := range []struct {
		re   *regexp.Regexp
		mask string
	}{
		{cardPattern, "[REDACTED_CARD]"},
		{emailPattern, "[REDACTED_EMAIL]"},
		{phonePattern, "[REDACTED_PHONE]"},
	} {
		next := rule.re.ReplaceAllString(out, rule.mask)
		changed = changed || next != out
		out = next
	}
	return out, changed
}
