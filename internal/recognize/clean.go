package recognize

import "strings"

// Product numbers shorter than this many digits are treated as misreads.
const minDigits = 4

// Product numbers longer than this many digits are treated as misreads.
const maxDigits = 20

// Clean normalizes raw engine output into a product number candidate: every
// whitespace and non-digit character is stripped, and results outside the
// 4..20 digit range are rejected as misreads (empty string). Clean is
// idempotent.
func Clean(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) < minDigits || len(cleaned) > maxDigits {
		return ""
	}
	return cleaned
}
