package mnemonic

import (
	"crypto/sha512"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	seedIterations = 2048
	seedLength     = 64
	saltPrefix     = "mnemonic"
)

// Seed derives the 64-byte BIP-39 seed from a phrase and optional passphrase.
// It does not validate the phrase.
func Seed(words []string, passphrase string) []byte {
	password := norm.NFKD.String(strings.Join(words, " "))
	salt := norm.NFKD.String(saltPrefix + passphrase)

	return pbkdf2.Key([]byte(password), []byte(salt), seedIterations, seedLength, sha512.New)
}
