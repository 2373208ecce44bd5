package mnemonic

import (
	"fmt"
	"iter"

	"github.com/minio/sha256-simd"

	"hrnd/internal/wordlist"
)

const (
	bitsPerWord = 11
	maxWords    = 24
	maxBytes    = (maxWords*bitsPerWord + 7) / 8
)

// ChecksumBits returns the checksum length in bits for a phrase of n words.
func ChecksumBits(n int) int { return n / 3 }

// EntropyBytes returns the entropy length in bytes for a phrase of n words.
func EntropyBytes(n int) int { return n * 4 / 3 }

func legalLength(n int) bool {
	switch n {
	case 12, 15, 18, 21, 24:
		return true
	default:
		return false
	}
}

// pack writes the 11-bit indices MSB first into buf.
func pack(idx []uint16, buf *[maxBytes]byte) {
	var acc uint32

	nbits, p := 0, 0

	for _, v := range idx {
		acc = acc<<bitsPerWord | uint32(v)
		nbits += bitsPerWord

		for nbits >= 8 {
			nbits -= 8
			buf[p] = byte(acc >> nbits)
			p++
		}

		acc &= 1<<nbits - 1
	}

	if nbits > 0 {
		buf[p] = byte(acc << (8 - nbits))
	}
}

// checksum returns the leading cs bits of SHA-256(entropy), right-aligned.
func checksum(entropy []byte, cs int) byte {
	sum := sha256.Sum256(entropy)
	return sum[0] >> (8 - cs)
}

// ValidateIndices checks the BIP-39 checksum of a phrase given as word indices.
// It does not allocate and is safe for concurrent use.
func ValidateIndices(idx []uint16) Outcome {
	n := len(idx)
	if !legalLength(n) {
		return Malformed
	}

	for _, v := range idx {
		if v >= wordlist.Size {
			return Malformed
		}
	}

	var buf [maxBytes]byte

	pack(idx, &buf)

	ent, cs := EntropyBytes(n), ChecksumBits(n)
	if buf[ent]>>(8-cs) == checksum(buf[:ent], cs) {
		return Valid
	}

	return Invalid
}

// LastWords yields, in ascending index order, every final word index that
// completes prefix into a valid phrase. Only the checksum bits of the last
// word are determined by the rest, so there are 2^(11-n/3) results.
// Nothing is yielded when len(prefix)+1 is not a legal length.
func LastWords(prefix []uint16) iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		n := len(prefix) + 1
		if !legalLength(n) {
			return
		}

		idx := make([]uint16, n)
		copy(idx, prefix)

		ent, cs := EntropyBytes(n), ChecksumBits(n)
		free := bitsPerWord - cs

		var buf [maxBytes]byte

		for f := range uint16(1) << free {
			idx[n-1] = f << cs
			pack(idx, &buf)

			if !yield(f<<cs | uint16(checksum(buf[:ent], cs))) {
				return
			}
		}
	}
}

// Validator resolves words against a WordList before checking the checksum.
type Validator struct {
	wl *wordlist.WordList
}

// NewValidator returns a Validator over wl. A nil wl selects the English list.
func NewValidator(wl *wordlist.WordList) *Validator {
	if wl == nil {
		wl = wordlist.English()
	}

	return &Validator{wl: wl}
}

// WordList returns the list the validator resolves words against.
func (v *Validator) WordList() *wordlist.WordList { return v.wl }

// Validate classifies a full word sequence.
func (v *Validator) Validate(words []string) Outcome {
	if !legalLength(len(words)) {
		return Malformed
	}

	var idx [maxWords]uint16

	for i, w := range words {
		x, ok := v.wl.IndexOf(w)
		if !ok {
			return Malformed
		}

		idx[i] = x
	}

	return ValidateIndices(idx[:len(words)])
}

// ValidatePhrase is Validate for a Phrase. Phrases with missing slots are Malformed.
func (v *Validator) ValidatePhrase(p Phrase) Outcome {
	if !p.Complete() {
		return Malformed
	}

	return v.Validate(p.Tokens())
}

// Indices resolves each word to its index.
func (v *Validator) Indices(words []string) ([]uint16, error) {
	out := make([]uint16, len(words))

	for i, w := range words {
		x, ok := v.wl.IndexOf(w)
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownWord, w, i)
		}

		out[i] = x
	}

	return out, nil
}

// Check is Validate with a descriptive error in place of the Outcome.
func (v *Validator) Check(words []string) error {
	if err := CheckLength(len(words)); err != nil {
		return err
	}

	idx, err := v.Indices(words)
	if err != nil {
		return err
	}

	if ValidateIndices(idx) != Valid {
		return ErrChecksumMismatch
	}

	return nil
}
