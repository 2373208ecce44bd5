// Package search enumerates every completion of a phrase with missing words
// and keeps the ones whose BIP-39 checksum holds.
//
// The search space of a phrase with k missing slots is the Cartesian product
// of the wordlist with itself k times. Each candidate has an offset in
// [0, 2048^k): the leftmost missing slot is the most significant digit, so
// offset order is lexicographic order over missing-slot word indices.
//
// Offsets make the space restartable by range. Run splits a range into
// chunks validated by a bounded worker pool; Matches walks a range lazily on
// the caller's goroutine.
package search
