package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// Size is the number of words in every BIP-39 list.
const Size = 2048

var (
	ErrWrongSize      = errors.New("wordlist: wrong number of words")
	ErrDuplicateWord  = errors.New("wordlist: duplicate word")
	ErrEmptyWord      = errors.New("wordlist: empty word")
	ErrIndexOutOfList = errors.New("wordlist: index out of range")
)

// WordList is an ordered, read-only vocabulary with a reverse index.
type WordList struct {
	words []string
	index map[string]uint16
}

// New validates words and builds a WordList. The slice is copied.
func New(words []string) (*WordList, error) {
	if len(words) != Size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWrongSize, len(words), Size)
	}

	wl := &WordList{
		words: make([]string, Size),
		index: make(map[string]uint16, Size),
	}

	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyWord, i)
		}

		if prev, ok := wl.index[w]; ok {
			return nil, fmt.Errorf("%w %q at positions %d and %d", ErrDuplicateWord, w, prev, i)
		}

		wl.words[i] = w
		wl.index[w] = uint16(i)
	}

	return wl, nil
}

var english = sync.OnceValue(func() *WordList {
	wl, err := New(wordlists.English)
	if err != nil {
		panic(fmt.Sprintf("wordlist: embedded English list is malformed: %v", err))
	}

	return wl
})

// English returns the canonical BIP-39 English list.
func English() *WordList {
	return english()
}

// Parse reads one word per line. Blank lines and surrounding whitespace are ignored.
func Parse(r io.Reader) (*WordList, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}

		words = append(words, w)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading wordlist: %w", err)
	}

	return New(words)
}

// LoadFile loads a newline-delimited wordlist from path.
func LoadFile(path string) (*WordList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer f.Close()

	wl, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("wordlist %s: %w", path, err)
	}

	return wl, nil
}

// Size returns the number of words, always 2048.
func (wl *WordList) Size() int { return len(wl.words) }

// Contains reports whether word is in the list verbatim.
func (wl *WordList) Contains(word string) bool {
	_, ok := wl.index[word]
	return ok
}

// IndexOf returns the 11-bit index of word.
func (wl *WordList) IndexOf(word string) (uint16, bool) {
	i, ok := wl.index[word]
	return i, ok
}

// WordAt returns the word at index i. It panics if i is out of range,
// like a slice access would.
func (wl *WordList) WordAt(i uint16) string {
	return wl.words[i]
}

// Lookup is WordAt with an error instead of a panic.
func (wl *WordList) Lookup(i int) (string, error) {
	if i < 0 || i >= len(wl.words) {
		return "", fmt.Errorf("%w: %d", ErrIndexOutOfList, i)
	}

	return wl.words[i], nil
}

// Words returns a copy of the list in canonical order.
func (wl *WordList) Words() []string {
	out := make([]string, len(wl.words))
	copy(out, wl.words)

	return out
}
