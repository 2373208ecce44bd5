package match

import (
	"strings"
	"unicode"
)

// CleanToken prepares a typed token for fuzzy matching.
// The normalization pipeline:
// 1. Case-fold to lower.
// 2. Strip enumeration prefixes and punctuation ("3.", "(12)", trailing commas).
// 3. Drop anything that is not a letter.
func CleanToken(s string) string {
	s = strings.ToLower(s)

	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
