package mnemonic

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Placeholder is the marker used when rendering missing slots.
const Placeholder = "____"

// LegalLengths lists the word counts defined by BIP-39.
var LegalLengths = []int{12, 15, 18, 21, 24}

// ValidLength reports whether n is a legal phrase length.
func ValidLength(n int) bool {
	return legalLength(n)
}

// CheckLength returns ErrInvalidLength when n is not a legal phrase length.
func CheckLength(n int) error {
	if !ValidLength(n) {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}

	return nil
}

// IsPlaceholder reports whether tok consists solely of '_' and '?' characters.
func IsPlaceholder(tok string) bool {
	if tok == "" {
		return false
	}

	for _, r := range tok {
		if r != '_' && r != '?' {
			return false
		}
	}

	return true
}

// NormalizeToken trims, lower-cases and NFKD-normalizes a single token.
func NormalizeToken(tok string) string {
	return norm.NFKD.String(strings.ToLower(strings.TrimSpace(tok)))
}

// Slot is one word position. When Missing is set, Word holds the marker as typed.
type Slot struct {
	Word    string
	Missing bool
}

// Phrase is an immutable sequence of slots.
type Phrase struct {
	slots   []Slot
	missing []int
}

// Parse splits raw on whitespace, normalizes each token and marks
// placeholder tokens as missing. Length is not checked here.
func Parse(raw string) Phrase {
	fields := strings.Fields(raw)
	slots := make([]Slot, len(fields))

	for i, f := range fields {
		tok := NormalizeToken(f)
		slots[i] = Slot{Word: tok, Missing: IsPlaceholder(tok)}
	}

	return NewPhrase(slots)
}

// NewPhrase builds a Phrase from slots. The slice is copied.
func NewPhrase(slots []Slot) Phrase {
	p := Phrase{slots: slices.Clone(slots)}
	for i, s := range p.slots {
		if s.Missing {
			p.missing = append(p.missing, i)
		}
	}

	return p
}

// FromWords builds a fully known Phrase.
func FromWords(words []string) Phrase {
	slots := make([]Slot, len(words))
	for i, w := range words {
		slots[i] = Slot{Word: w}
	}

	return NewPhrase(slots)
}

// Len returns the number of slots.
func (p Phrase) Len() int { return len(p.slots) }

// Slot returns slot i.
func (p Phrase) Slot(i int) Slot { return p.slots[i] }

// Missing returns the positions of missing slots in ascending order.
func (p Phrase) Missing() []int { return slices.Clone(p.missing) }

// Complete reports whether every slot is known.
func (p Phrase) Complete() bool { return len(p.missing) == 0 }

// Tokens returns the raw token of every slot, markers included.
func (p Phrase) Tokens() []string {
	out := make([]string, len(p.slots))
	for i, s := range p.slots {
		out[i] = s.Word
	}

	return out
}

// Words returns the words of a complete phrase.
func (p Phrase) Words() ([]string, error) {
	if !p.Complete() {
		return nil, fmt.Errorf("%w at positions %v", ErrIncomplete, p.missing)
	}

	return p.Tokens(), nil
}

// String joins the slots with single spaces, rendering missing slots as Placeholder.
func (p Phrase) String() string {
	var b strings.Builder

	for i, s := range p.slots {
		if i > 0 {
			b.WriteByte(' ')
		}

		if s.Missing {
			b.WriteString(Placeholder)
		} else {
			b.WriteString(s.Word)
		}
	}

	return b.String()
}
