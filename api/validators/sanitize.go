package validators

import "strings"

// SanitizeString trims surrounding whitespace and, when maxLen is positive,
// truncates the result to maxLen bytes.
func SanitizeString(input string, maxLen int) string {
	out := strings.TrimSpace(input)
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}
