package mnemonic

import "errors"

var (
	ErrInvalidLength    = errors.New("mnemonic: word count must be 12, 15, 18, 21 or 24")
	ErrUnknownWord      = errors.New("mnemonic: word not in wordlist")
	ErrIncomplete       = errors.New("mnemonic: phrase has missing words")
	ErrChecksumMismatch = errors.New("mnemonic: checksum mismatch")
)
