package derive

import (
	"errors"
	"fmt"
)

var ErrUnknownFormat = errors.New("derive: unknown address format")

//go:generate go tool stringer -type=Format -linecomment -output=format_string.go

// Format is the address encoding and, for standard paths, the BIP purpose.
type Format int

const (
	_ Format = iota // zero value is not a valid format

	Legacy  // legacy
	Segwit  // segwit
	Taproot // taproot
)

// Formats lists every supported format.
var Formats = []Format{Legacy, Segwit, Taproot}

// ParseFormat parses "legacy", "segwit" or "taproot".
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if f.String() == s {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// purpose returns the BIP-43 purpose of the standard path for f.
func (f Format) purpose() (uint32, error) {
	switch f {
	case Legacy:
		return 44, nil
	case Segwit:
		return 84, nil
	case Taproot:
		return 86, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
}

// zpubVersion is the SLIP-132 version for BIP-84 account extended public keys.
var zpubVersion = []byte{0x04, 0xb2, 0x47, 0x46}
