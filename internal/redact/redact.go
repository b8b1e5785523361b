// Package redact scrubs personal identifiers from outbound text before it
// crosses the client-trust boundary.
package redact

import "regexp"

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	barePhone    = regexp.MustCompile(`\b\d{10}\b`)
	delimPhone   = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// Scrub replaces every email-shaped substring with [EMAIL] and every
// phone-shaped substring with [PHONE]. Patterns apply left to right in a
// fixed order: email, bare 10-digit run, then dash/dot-delimited 3-3-4.
// The [PHONE] token contains no digits, so the delimited pass cannot
// re-match text already replaced by the bare-digit pass.
func Scrub(text string) string {
	out := emailPattern.ReplaceAllString(text, "[EMAIL]")
	out = barePhone.ReplaceAllString(out, "[PHONE]")
	out = delimPhone.ReplaceAllString(out, "[PHONE]")
	return out
}
