package mnemonic

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"hrnd/internal/wordlist"
)

const abandonAbout = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestValidate_KnownVectors(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name     string
		phrase   string
		expected Outcome
	}{
		{"zero entropy 12", abandonAbout, Valid},
		{"7f entropy 12", "legal winner thank year wave sausage worth useful legal winner thank yellow", Valid},
		{"80 entropy 12", "letter advice cage absurd amount doctor acoustic avoid letter advice cage above", Valid},
		{"ff entropy 12", "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong", Valid},
		{"zero entropy 18", strings.Repeat("abandon ", 17) + "agent", Valid},
		{"zero entropy 24", strings.Repeat("abandon ", 23) + "art", Valid},
		{"ff entropy 24", strings.Repeat("zoo ", 23) + "vote", Valid},
		{"bad checksum", strings.Repeat("abandon ", 12), Invalid},
		{"bad checksum 24", strings.Repeat("zoo ", 24), Invalid},
		{"unknown word", strings.Repeat("abandon ", 11) + "supr", Malformed},
		{"thirteen words", strings.Repeat("abandon ", 12) + "about", Malformed},
		{"empty", "", Malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := strings.Fields(tt.phrase)
			assert.Equal(t, tt.expected, v.Validate(words))
			// Pure: same answer every time.
			assert.Equal(t, tt.expected, v.Validate(words))
		})
	}
}

func TestValidateIndices_OutOfRange(t *testing.T) {
	idx := make([]uint16, 12)
	idx[4] = wordlist.Size
	assert.Equal(t, Malformed, ValidateIndices(idx))
}

func TestValidatePhrase(t *testing.T) {
	v := NewValidator(wordlist.English())

	assert.Equal(t, Valid, v.ValidatePhrase(Parse(abandonAbout)))
	assert.Equal(t, Malformed, v.ValidatePhrase(Parse(strings.Replace(abandonAbout, "about", "____", 1))))
}

func TestValidate_SingleWordPerturbation(t *testing.T) {
	v := NewValidator(nil)
	wl := v.WordList()
	base := strings.Fields(abandonAbout)

	for pos := range base {
		idx, _ := wl.IndexOf(base[pos])
		for _, next := range []uint16{idx + 1, (idx + wordlist.Size - 1) % wordlist.Size} {
			words := slices.Clone(base)
			words[pos] = wl.WordAt(next)

			got := v.Validate(words)
			want := Invalid
			if bip39.IsMnemonicValid(strings.Join(words, " ")) {
				want = Valid
			}
			assert.Equal(t, want, got, "position %d -> %s", pos, words[pos])

			if pos == len(base)-1 {
				// Changing only checksum bits always breaks the checksum.
				assert.Equal(t, Invalid, got)
			}
		}
	}
}

func TestValidate_MatchesReferenceImplementation(t *testing.T) {
	v := NewValidator(nil)
	wl := v.WordList()
	rng := rand.New(rand.NewSource(39))

	for _, n := range LegalLengths {
		for range 200 {
			words := make([]string, n)
			for i := range words {
				words[i] = wl.WordAt(uint16(rng.Intn(wordlist.Size)))
			}

			want := Invalid
			if bip39.IsMnemonicValid(strings.Join(words, " ")) {
				want = Valid
			}
			require.Equal(t, want, v.Validate(words), strings.Join(words, " "))
		}
	}
}

func TestValidate_GeneratedMnemonicsAreValid(t *testing.T) {
	v := NewValidator(nil)

	for _, bits := range []int{128, 160, 192, 224, 256} {
		entropy, err := bip39.NewEntropy(bits)
		require.NoError(t, err)

		phrase, err := bip39.NewMnemonic(entropy)
		require.NoError(t, err)

		assert.Equal(t, Valid, v.Validate(strings.Fields(phrase)), phrase)
	}
}

func TestLastWords(t *testing.T) {
	v := NewValidator(nil)
	wl := v.WordList()

	for _, n := range LegalLengths {
		t.Run(fmt.Sprintf("%d words", n), func(t *testing.T) {
			prefix, err := v.Indices(strings.Fields(strings.Repeat("abandon ", n-1)))
			require.NoError(t, err)

			var brute []uint16

			candidate := append(slices.Clone(prefix), 0)
			for w := range uint16(wordlist.Size) {
				candidate[n-1] = w
				if ValidateIndices(candidate) == Valid {
					brute = append(brute, w)
				}
			}

			fast := slices.Collect(LastWords(prefix))
			assert.Equal(t, brute, fast)
			assert.Len(t, fast, 1<<(11-ChecksumBits(n)))
		})
	}

	first := slices.Collect(LastWords(make([]uint16, 11)))
	assert.Equal(t, "about", wl.WordAt(first[0]))

	assert.Empty(t, slices.Collect(LastWords(make([]uint16, 12))), "13 words is not legal")
}

func TestLastWords_StopsEarly(t *testing.T) {
	count := 0
	for range LastWords(make([]uint16, 23)) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestCheck(t *testing.T) {
	v := NewValidator(nil)

	require.NoError(t, v.Check(strings.Fields(abandonAbout)))
	require.ErrorIs(t, v.Check(strings.Fields("abandon abandon")), ErrInvalidLength)
	require.ErrorIs(t, v.Check(strings.Fields(strings.Repeat("abandon ", 11)+"supr")), ErrUnknownWord)
	require.ErrorIs(t, v.Check(strings.Fields(strings.Repeat("abandon ", 12))), ErrChecksumMismatch)
}

func TestSeed(t *testing.T) {
	words := strings.Fields(abandonAbout)

	seed := Seed(words, "TREZOR")
	assert.Equal(t,
		"c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		hex.EncodeToString(seed))

	assert.Equal(t, bip39.NewSeed(abandonAbout, ""), Seed(words, ""))
}
