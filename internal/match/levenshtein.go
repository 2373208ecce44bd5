package match

// Scorer returns a similarity score between 0 and 100, 100 meaning identical.
type Scorer func(a, b string) float64

// Levenshtein computes the Levenshtein distance (edit distance) between two strings.
// The distance is the minimum number of single-character edits (insertions, deletions,
// or substitutions) required to transform one string into the other.
// Strings are compared rune by rune.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// Ensure ra is the shorter string for space optimization
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Indel computes the insertion/deletion distance between two strings:
// len(a) + len(b) - 2*LCS(a, b), in runes.
func Indel(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for j := 1; j <= len(rb); j++ {
		for i := 1; i <= len(ra); i++ {
			if ra[i-1] == rb[j-1] {
				curr[i] = prev[i-1] + 1
			} else {
				curr[i] = max(prev[i], curr[i-1])
			}
		}

		prev, curr = curr, prev
	}

	return len(ra) + len(rb) - 2*prev[len(ra)]
}

// Ratio is the normalized Indel similarity:
// 100 * (1 - Indel(a, b) / (len(a) + len(b))).
// "supr" vs "super" scores 88.9.
func Ratio(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}

	return 100 * (1 - float64(Indel(a, b))/float64(total))
}

// LevenshteinRatio is the normalized Levenshtein similarity:
// 100 * (1 - Levenshtein(a, b) / max(len(a), len(b))).
func LevenshteinRatio(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 100
	}

	return 100 * (1 - float64(Levenshtein(a, b))/float64(maxLen))
}
