package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"hrnd/internal/brainwallet"
	"hrnd/internal/derive"
)

func cmdDerive(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: hrnd derive <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: mnemonic, brain-wallet")
		return 2
	}

	switch args[0] {
	case "mnemonic", "mnemonic-phrase":
		return cmdDeriveMnemonic(args[1:], out, errOut)
	case "brain-wallet":
		return cmdDeriveBrainWallet(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown derive subcommand: %s\n", args[0])
		return 2
	}
}

func cmdDeriveMnemonic(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("derive mnemonic", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var (
		phrase     string
		passphrase string
		index      uint
		format     string
		path       string
		xpub       bool
	)

	fs.StringVar(&phrase, "m", "", "Validated mnemonic")
	fs.StringVar(&phrase, "mnemonic", "", "Alias for -m")
	fs.StringVar(&passphrase, "passphrase", "", "Optional BIP-39 passphrase")
	fs.UintVar(&index, "index", 0, "Address index on the standard path")
	fs.StringVar(&format, "format", derive.Legacy.String(), "legacy, segwit or taproot")
	fs.StringVar(&path, "path", "", "Custom derivation path, e.g. m/0/0")
	fs.BoolVar(&xpub, "xpub", false, "Print the account extended public key instead of an address")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if phrase == "" || fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: hrnd derive mnemonic -m <phrase> [--passphrase p] [--index N] [--format f] [--path m/...] [--xpub]")
		return 2
	}

	f, err := derive.ParseFormat(format)
	if err != nil {
		fmt.Fprintf(errOut, "%v\n", err)
		return 2
	}

	if uint64(index) > uint64(^uint32(0)>>1) {
		fmt.Fprintf(errOut, "index %d out of range\n", index)
		return 2
	}

	result, err := derive.New(nil).Derive(derive.Request{
		Mnemonic:   phrase,
		Passphrase: passphrase,
		Format:     f,
		Index:      uint32(index),
		Path:       path,
		Xpub:       xpub,
	})
	if err != nil {
		fmt.Fprintf(errOut, "derive: %v\n", err)
		return 1
	}

	switch {
	case xpub:
		fmt.Fprintf(out, "xpub: %s\n", result)
	case path != "":
		fmt.Fprintf(out, "%s address [%s]: %s\n", strings.ToUpper(f.String()), path, result)
	default:
		fmt.Fprintf(out, "%s address [%d]: %s\n", strings.ToUpper(f.String()), index, result)
	}

	return 0
}

func cmdDeriveBrainWallet(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("derive brain-wallet", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var passphrase string

	fs.StringVar(&passphrase, "passphrase", "", "Brain wallet passphrase")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if passphrase == "" || fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: hrnd derive brain-wallet --passphrase <text>")
		return 2
	}

	addr, err := brainwallet.Address(passphrase)
	if err != nil {
		fmt.Fprintf(errOut, "brain wallet: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "address: %s\n", addr)

	return 0
}
