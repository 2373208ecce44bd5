package recovery

import (
	"errors"
	"fmt"
)

var ErrUnknownMode = errors.New("recovery: unknown mode")

//go:generate go tool stringer -type=Mode -linecomment -output=mode_string.go

// Mode selects between searching for missing words and correcting typos.
type Mode int

const (
	// ModeAuto searches when the input contains placeholders and corrects otherwise.
	ModeAuto    Mode = iota // auto
	ModeSearch              // search
	ModeCorrect             // correct
)

// ParseMode parses "auto", "search" or "correct". The empty string is ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "search":
		return ModeSearch, nil
	case "correct":
		return ModeCorrect, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
