package derive

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"hrnd/internal/mnemonic"
	"hrnd/internal/wordlist"
)

var ErrInvalidMnemonic = errors.New("derive: invalid mnemonic")

// Request selects what to derive from a phrase.
type Request struct {
	Mnemonic   string
	Passphrase string
	Format     Format
	// Index is the address index on the external chain of a standard path.
	Index uint32
	// Path, when set, replaces the standard path entirely.
	Path string
	// Xpub returns the extended public key instead of an address. For
	// standard paths this is the account key (m/purpose'/0'/0').
	Xpub bool
}

// Deriver derives keys on one network.
type Deriver struct {
	validator *mnemonic.Validator
	params    *chaincfg.Params
}

// New returns a mainnet Deriver validating against wl; nil selects English.
func New(wl *wordlist.WordList) *Deriver {
	return &Deriver{
		validator: mnemonic.NewValidator(wl),
		params:    &chaincfg.MainNetParams,
	}
}

// Derive returns an address or extended public key for req.
func (d *Deriver) Derive(req Request) (string, error) {
	if _, err := req.Format.purpose(); err != nil {
		return "", err
	}

	words, err := mnemonic.Parse(req.Mnemonic).Words()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}

	if err := d.validator.Check(words); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMnemonic, err)
	}

	master, err := hdkeychain.NewMaster(mnemonic.Seed(words, req.Passphrase), d.params)
	if err != nil {
		return "", fmt.Errorf("master key: %w", err)
	}

	path, err := d.path(req)
	if err != nil {
		return "", err
	}

	key, err := deriveKey(master, path)
	if err != nil {
		return "", fmt.Errorf("derive %s: %w", path, err)
	}

	if req.Xpub {
		return d.extendedPublic(key, req)
	}

	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("public key at %s: %w", path, err)
	}

	return Address(pub, req.Format, d.params)
}

func (d *Deriver) path(req Request) (Path, error) {
	switch {
	case req.Path != "":
		return ParsePath(req.Path)
	case req.Xpub:
		return StandardAccountPath(req.Format)
	default:
		return StandardAddressPath(req.Format, req.Index)
	}
}

func (d *Deriver) extendedPublic(key *hdkeychain.ExtendedKey, req Request) (string, error) {
	pub, err := key.Neuter()
	if err != nil {
		return "", fmt.Errorf("neuter: %w", err)
	}

	if req.Path == "" && req.Format == Segwit {
		pub, err = pub.CloneWithVersion(zpubVersion)
		if err != nil {
			return "", fmt.Errorf("zpub version: %w", err)
		}
	}

	return pub.String(), nil
}

func deriveKey(master *hdkeychain.ExtendedKey, path Path) (*hdkeychain.ExtendedKey, error) {
	key := master

	for _, idx := range path {
		var err error

		key, err = key.Derive(idx)
		if err != nil {
			return nil, err
		}
	}

	return key, nil
}

// Address encodes pub in format f for params.
func Address(pub *btcec.PublicKey, f Format, params *chaincfg.Params) (string, error) {
	var (
		addr btcutil.Address
		err  error
	)

	switch f {
	case Legacy:
		addr, err = btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), params)
	case Segwit:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), params)
	case Taproot:
		tweaked := txscript.ComputeTaprootKeyNoScript(pub)
		addr, err = btcutil.NewAddressTaproot(schnorr.SerializePubKey(tweaked), params)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}

	if err != nil {
		return "", fmt.Errorf("encode %s address: %w", f, err)
	}

	return addr.EncodeAddress(), nil
}
