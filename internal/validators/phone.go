package validators

import "strings"

// NormalizePhone strips common separators and checks the result looks like
// an E.164 number: optional leading '+', then 8 to 15 digits.
func NormalizePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	out := b.String()
	digits := len(strings.TrimPrefix(out, "+"))
	if digits < 8 || digits > 15 {
		return "", false
	}
	return out, true
}
