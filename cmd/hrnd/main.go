// Package main provides the CLI entrypoint for hrnd.
//
// hrnd recovers BIP-39 mnemonics:
//   - Brute-forces words marked as missing (____ or ?) against the checksum
//   - Corrects mistyped words by fuzzy matching against the wordlist
//   - Derives addresses and extended public keys from a recovered phrase
//   - Derives legacy brain wallet addresses
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "recover":
		return cmdRecover(ctx, args[1:], out, errOut)
	case "derive":
		return cmdDerive(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "hrnd: BIP-39 mnemonic recovery")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hrnd recover -m <phrase> [--mode auto|search|correct] [--threshold 70] [--workers N]")
	fmt.Fprintln(w, "               [--start N --end N] [--quiet] [-o <file>] [--wordlist <file>] [--config <job.yaml>] [--verbose]")
	fmt.Fprintln(w, "  hrnd derive mnemonic -m <phrase> [--passphrase <p>] [--index N] [--format legacy|segwit|taproot] [--path m/...] [--xpub]")
	fmt.Fprintln(w, "  hrnd derive brain-wallet --passphrase <text>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - mark unknown words with ____ or ?; up to 5 words can be searched")
	fmt.Fprintln(w, "  - --start/--end select a slice of the search space so long jobs can be split or resumed")
	fmt.Fprintln(w, "  - -o writes one phrase per line; --quiet suppresses the listing on stdout")
	fmt.Fprintln(w, "  - flags override values loaded from --config")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
