// Package match provides string similarity scoring, candidate ranking and
// typo correction against a BIP-39 wordlist.
//
// Key functions:
//   - Ratio: normalized Indel similarity on a 0-100 scale
//   - LevenshteinRatio: normalized Levenshtein similarity on a 0-100 scale
//   - RankCandidates: scores a token against every word in the list
//   - Corrector: maps out-of-vocabulary tokens to their best match above a threshold
package match
