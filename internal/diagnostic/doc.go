// Package diagnostic provides structured notes, warnings and errors produced
// while recovering a phrase.
//
// Key capabilities:
//   - Detected missing-word positions
//   - Typo corrections with their scores and alternatives
//   - Tokens that could not be matched to any word
//   - Checksum outcome of the final phrase
package diagnostic
