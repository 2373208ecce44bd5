// Package wordlist provides the canonical BIP-39 vocabulary as an immutable,
// index-addressable list.
//
// Each word maps to an 11-bit index (0..2047) in the order fixed by the
// BIP-39 English list. The order is never re-sorted; lookups by word go
// through a hash index built once at construction.
//
// Key functions:
//   - English: the process-wide English list
//   - New: builds a list from any 2048 distinct words
//   - LoadFile: reads a newline-delimited list from disk
package wordlist
