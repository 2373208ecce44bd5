package search

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"hrnd/internal/mnemonic"
	"hrnd/internal/wordlist"
)

// MaxMissing is the largest number of missing slots whose space fits in a uint64.
const MaxMissing = 5

var (
	ErrSpaceTooLarge = errors.New("search: too many missing words")
	ErrInvalidRange  = errors.New("search: invalid range")
)

// Space is the set of candidate phrases for one partial phrase.
// It is read-only and safe for concurrent use.
type Space struct {
	wl       *wordlist.WordList
	template []uint16
	missing  []int
	size     uint64
}

// NewSpace resolves the known words of p and sizes its search space.
func NewSpace(p mnemonic.Phrase, wl *wordlist.WordList) (*Space, error) {
	if wl == nil {
		wl = wordlist.English()
	}

	if err := mnemonic.CheckLength(p.Len()); err != nil {
		return nil, err
	}

	missing := p.Missing()
	if len(missing) > MaxMissing {
		return nil, fmt.Errorf("%w: got %d", ErrSpaceTooLarge, len(missing))
	}

	template := make([]uint16, p.Len())

	for i := range template {
		slot := p.Slot(i)
		if slot.Missing {
			continue
		}

		idx, ok := wl.IndexOf(slot.Word)
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", mnemonic.ErrUnknownWord, slot.Word, i)
		}

		template[i] = idx
	}

	size := uint64(1)
	for range missing {
		size *= wordlist.Size
	}

	return &Space{
		wl:       wl,
		template: template,
		missing:  missing,
		size:     size,
	}, nil
}

// Size returns the number of candidates, 2048^k.
func (s *Space) Size() uint64 { return s.size }

// Missing returns the missing positions in ascending order.
func (s *Space) Missing() []int { return slices.Clone(s.missing) }

// Len returns the phrase length.
func (s *Space) Len() int { return len(s.template) }

// Decode writes the candidate at offset into dst, which must have Len() elements.
func (s *Space) Decode(offset uint64, dst []uint16) {
	copy(dst, s.template)

	for j := len(s.missing) - 1; j >= 0; j-- {
		dst[s.missing[j]] = uint16(offset % wordlist.Size)
		offset /= wordlist.Size
	}
}

// Offset is the inverse of Decode.
func (s *Space) Offset(idx []uint16) uint64 {
	var off uint64
	for _, p := range s.missing {
		off = off*wordlist.Size + uint64(idx[p])
	}

	return off
}

// Words renders a candidate as words.
func (s *Space) Words(idx []uint16) []string {
	out := make([]string, len(idx))
	for i, x := range idx {
		out[i] = s.wl.WordAt(x)
	}

	return out
}

// bounds resolves a [start, end) request; end 0 means the end of the space.
func (s *Space) bounds(start, end uint64) (uint64, uint64, error) {
	if end == 0 {
		end = s.size
	}

	if start > end || end > s.size {
		return 0, 0, fmt.Errorf("%w: [%d, %d) outside [0, %d)", ErrInvalidRange, start, end, s.size)
	}

	return start, end, nil
}

// Candidates yields every candidate in [start, end) in offset order.
// The yielded slice is reused between iterations; copy it to retain it.
func (s *Space) Candidates(start, end uint64) iter.Seq2[uint64, []uint16] {
	return func(yield func(uint64, []uint16) bool) {
		end = min(end, s.size)
		if start >= end {
			return
		}

		buf := make([]uint16, len(s.template))
		s.Decode(start, buf)

		for off := start; off < end; off++ {
			if !yield(off, buf) {
				return
			}

			// odometer: the rightmost missing slot varies fastest
			for j := len(s.missing) - 1; j >= 0; j-- {
				p := s.missing[j]

				buf[p]++
				if buf[p] < wordlist.Size {
					break
				}

				buf[p] = 0
			}
		}
	}
}

// lastWordOnly reports whether only the final slot is missing, in which case
// valid completions can be computed from the checksum instead of scanned.
func (s *Space) lastWordOnly() bool {
	return len(s.missing) == 1 && s.missing[0] == len(s.template)-1
}

// Match is one checksum-valid completion.
type Match struct {
	Offset uint64
	Words  []string
}

// String joins the words with single spaces.
func (m Match) String() string {
	return strings.Join(m.Words, " ")
}
