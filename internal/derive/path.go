package derive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

var ErrInvalidPath = errors.New("derive: invalid derivation path")

// Path is a parsed BIP-32 path; hardened elements carry HardenedKeyStart.
type Path []uint32

// ParsePath parses "m/84'/0'/0'/0/5". Hardened elements may be marked with
// ' or h. The leading "m" is required.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, s)
	}

	path := make(Path, 0, len(parts)-1)

	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H")
		if hardened {
			part = part[:len(part)-1]
		}

		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("%w: bad element %q in %q", ErrInvalidPath, part, s)
		}

		idx := uint32(n)
		if hardened {
			idx += hdkeychain.HardenedKeyStart
		}

		path = append(path, idx)
	}

	return path, nil
}

// String renders the path with ' for hardened elements.
func (p Path) String() string {
	var b strings.Builder

	b.WriteString("m")

	for _, idx := range p {
		b.WriteByte('/')

		if idx >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(idx-hdkeychain.HardenedKeyStart), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}

	return b.String()
}

// StandardAccountPath returns m/purpose'/0'/0' for f.
func StandardAccountPath(f Format) (Path, error) {
	purpose, err := f.purpose()
	if err != nil {
		return nil, err
	}

	return Path{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + 0, // coin type: bitcoin
		hdkeychain.HardenedKeyStart + 0, // account
	}, nil
}

// StandardAddressPath returns m/purpose'/0'/0'/0/index for f.
func StandardAddressPath(f Format, index uint32) (Path, error) {
	account, err := StandardAccountPath(f)
	if err != nil {
		return nil, err
	}

	return append(account, 0, index), nil
}
