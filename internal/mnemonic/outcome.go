package mnemonic

//go:generate go tool stringer -type=Outcome -linecomment -output=outcome_string.go

// Outcome is the result of validating one fully known phrase.
type Outcome int

const (
	_ Outcome = iota // zero value is not a valid outcome

	// Valid means the checksum matches.
	Valid // valid
	// Invalid means the phrase is well formed but the checksum does not match.
	Invalid // invalid
	// Malformed means the length is illegal or a word is not in the list.
	Malformed // malformed
)
