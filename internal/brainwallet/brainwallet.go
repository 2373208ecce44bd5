// Package brainwallet derives the legacy address of a passphrase-only wallet:
// the private key is the SHA-256 of the passphrase and the address hashes the
// uncompressed public key.
package brainwallet

import (
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/minio/sha256-simd"
)

var ErrEmptyPassphrase = errors.New("brainwallet: empty passphrase")

// Key is a brain wallet key pair.
type Key struct {
	Private *btcec.PrivateKey
	Public  *btcec.PublicKey
}

// FromPassphrase hashes passphrase into a private key.
func FromPassphrase(passphrase string) (Key, error) {
	if passphrase == "" {
		return Key{}, ErrEmptyPassphrase
	}

	sum := sha256.Sum256([]byte(passphrase))
	priv, pub := btcec.PrivKeyFromBytes(sum[:])

	return Key{Private: priv, Public: pub}, nil
}

// Address returns the P2PKH address of the uncompressed public key.
func (k Key) Address() string {
	hash := btcutil.Hash160(k.Public.SerializeUncompressed())

	return base58.CheckEncode(hash, chaincfg.MainNetParams.PubKeyHashAddrID)
}

// WIF returns the private key in uncompressed wallet import format.
func (k Key) WIF() (string, error) {
	wif, err := btcutil.NewWIF(k.Private, &chaincfg.MainNetParams, false)
	if err != nil {
		return "", err
	}

	return wif.String(), nil
}

// Address is FromPassphrase followed by Key.Address.
func Address(passphrase string) (string, error) {
	k, err := FromPassphrase(passphrase)
	if err != nil {
		return "", err
	}

	return k.Address(), nil
}
