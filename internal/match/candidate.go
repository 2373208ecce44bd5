package match

import (
	"sort"

	"hrnd/internal/wordlist"
)

// Candidate is one wordlist entry scored against a token.
type Candidate struct {
	Word  string
	Index uint16
	Score float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores token against every word in wl.
// Returns candidates sorted by score (descending), ties in wordlist order.
func RankCandidates(token string, wl *wordlist.WordList, score Scorer) CandidateList {
	if score == nil {
		score = Ratio
	}

	candidates := make(CandidateList, wl.Size())
	for i := range candidates {
		w := wl.WordAt(uint16(i))
		candidates[i] = Candidate{
			Word:  w,
			Index: uint16(i),
			Score: score(token, w),
		}
	}

	sort.Sort(candidates)

	return candidates
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by wordlist index so the first word in
// canonical order wins a tie.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Index < c[j].Index
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates are within gap of each other.
func (c CandidateList) IsAmbiguous(gap float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Score-c[1].Score < gap
}

// AboveThreshold returns candidates scoring strictly above threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score > threshold {
			result = append(result, cand)
		}
	}

	return result
}
