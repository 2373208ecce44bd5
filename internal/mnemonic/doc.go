// Package mnemonic models BIP-39 phrases and validates their checksum.
//
// A Phrase is an ordered sequence of slots, each either a known word or a
// missing placeholder. Validation packs the 11-bit word indices into a
// bitstream, splits it into entropy and checksum, and compares the checksum
// against the leading bits of SHA-256(entropy).
//
// Key functions:
//   - Parse: builds a Phrase from user input, detecting placeholder markers
//   - ValidateIndices: the allocation-free checksum test used by the search
//   - Validator.Validate: word-level validation with a tri-state Outcome
//   - Seed: PBKDF2 seed derivation for downstream key derivation
package mnemonic
