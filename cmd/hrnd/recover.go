package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"hrnd/internal/config"
	"hrnd/internal/diagnostic"
	"hrnd/internal/mnemonic"
	"hrnd/internal/output"
	"hrnd/internal/recovery"
	"hrnd/internal/wordlist"
)

const recoverUsage = "usage: hrnd recover -m <phrase> [flags]"

func cmdRecover(ctx context.Context, args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("recover", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var (
		phrase       string
		mode         string
		threshold    float64
		workers      int
		start, end   uint64
		quiet        bool
		outPath      string
		wordlistPath string
		configPath   string
		verbose      bool
	)

	fs.StringVar(&phrase, "m", "", "Mnemonic with unknown words marked as ____ or ?")
	fs.StringVar(&phrase, "mnemonic", "", "Alias for -m")
	fs.StringVar(&mode, "mode", "auto", "auto, search or correct")
	fs.Float64Var(&threshold, "threshold", 0, "Minimum similarity score for a typo correction (default 70)")
	fs.IntVar(&workers, "workers", 0, "Worker count (default GOMAXPROCS)")
	fs.Uint64Var(&start, "start", 0, "First search offset")
	fs.Uint64Var(&end, "end", 0, "Search offset to stop before (0 means the whole space)")
	fs.BoolVar(&quiet, "quiet", false, "Do not list recovered phrases")
	fs.StringVar(&outPath, "o", "", "Write recovered phrases to this file")
	fs.StringVar(&outPath, "output", "", "Alias for -o")
	fs.StringVar(&wordlistPath, "wordlist", "", "Custom 2048-word list, one word per line")
	fs.StringVar(&configPath, "config", "", "YAML job file")
	fs.BoolVar(&verbose, "verbose", false, "Log search progress")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 0 {
		fmt.Fprintln(errOut, recoverUsage)
		return 2
	}

	job := config.Default()

	if configPath != "" {
		var err error

		job, err = config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(errOut, "load config: %v\n", err)
			return 1
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m", "mnemonic":
			job.Mnemonic = phrase
		case "mode":
			job.Mode = mode
		case "threshold":
			job.Threshold = &threshold
		case "workers":
			job.Workers = workers
		case "start":
			job.Start = start
		case "end":
			job.End = end
		case "quiet":
			job.Quiet = quiet
		case "o", "output":
			job.Output = outPath
		case "wordlist":
			job.Wordlist = wordlistPath
		}
	})

	if job.Mnemonic == "" {
		fmt.Fprintln(errOut, recoverUsage)
		return 2
	}

	if err := job.Validate(); err != nil {
		fmt.Fprintf(errOut, "%v\n", err)
		return 2
	}

	logger := newLogger(errOut, verbose)

	var wl *wordlist.WordList

	if job.Wordlist != "" {
		var err error

		wl, err = wordlist.LoadFile(job.Wordlist)
		if err != nil {
			fmt.Fprintf(errOut, "load wordlist: %v\n", err)
			return 1
		}
	}

	opts, err := job.Options()
	if err != nil {
		fmt.Fprintf(errOut, "%v\n", err)
		return 2
	}

	opts.OnDiagnostic = func(d diagnostic.Diagnostic) { logDiagnostic(logger, d) }
	opts.OnProgress = func(done, total uint64) {
		logger.Debug("progress", "done", done, "total", total)
	}

	// Phrases are streamed to stdout and the output file as they are found,
	// in discovery order, and never held in memory.
	st := &stream{out: out, quiet: job.Quiet}
	if job.Output != "" {
		st.file = output.NewFile(job.Output)
	}

	opts.Discard = true
	opts.OnFound = st.found

	res, err := recovery.New(wl).Recover(ctx, job.Mnemonic, opts)

	if closeErr := st.close(logger); closeErr != nil {
		fmt.Fprintf(errOut, "save: %v\n", closeErr)

		if err == nil {
			return 1
		}
	}

	if err != nil {
		if res != nil && errors.Is(err, context.Canceled) {
			logger.Warn("search interrupted, continue with --start set to resume",
				"found", st.count,
				"resume", res.Stats.Resume)
		}

		fmt.Fprintf(errOut, "recover: %v\n", err)

		return 1
	}

	if res.Mode == recovery.ModeCorrect {
		return reportCorrection(res, job, logger, out, errOut)
	}

	return reportSearch(res, job, logger, st, out)
}

// stream receives search results as they are found.
type stream struct {
	out   io.Writer
	quiet bool
	file  *output.File
	count int
}

func (s *stream) found(phrase string) error {
	if s.file != nil {
		if err := s.file.WriteLine(phrase); err != nil {
			return err
		}
	}

	s.count++

	if s.quiet {
		return nil
	}

	return output.ListItem(s.out, s.count, phrase)
}

func (s *stream) close(logger *slog.Logger) error {
	if s.file == nil {
		return nil
	}

	if err := s.file.Close(); err != nil {
		return err
	}

	if n := s.file.Count(); n > 0 {
		logger.Info("saved mnemonics", "count", n, "path", s.file.Path())
	}

	return nil
}

func logDiagnostic(logger *slog.Logger, d diagnostic.Diagnostic) {
	level := slog.LevelInfo

	switch d.Severity {
	case diagnostic.Warning:
		level = slog.LevelWarn
	case diagnostic.Error:
		level = slog.LevelError
	}

	attrs := []any{"code", d.Code}
	if d.Position > 0 {
		attrs = append(attrs, "word", d.Position)
	}

	if len(d.Suggestions) > 0 {
		attrs = append(attrs, "suggestions", d.Suggestions)
	}

	logger.Log(context.Background(), level, d.Message, attrs...)
}

func reportSearch(res *recovery.Result, job *config.Job, logger *slog.Logger, st *stream, out io.Writer) int {
	if res.Outcome == mnemonic.Malformed {
		fmt.Fprintln(out, "no search performed: fix the unknown words first")
		return 1
	}

	logger.Info("search finished",
		"covered", res.Stats.Covered,
		"matches", res.Stats.Matches,
		"workers", res.Stats.Workers,
		"shortcut", res.Stats.Shortcut,
		"elapsed", res.Stats.Elapsed)

	switch {
	case st.count == 0:
		fmt.Fprintln(out, "no valid mnemonics found")
	case !job.Quiet || job.Output == "":
		fmt.Fprintf(out, "found %d valid mnemonic(s)\n", st.count)
	}

	return 0
}

func reportCorrection(res *recovery.Result, job *config.Job, logger *slog.Logger, out io.Writer, errOut io.Writer) int {
	p, ok := res.Validated()
	if !ok {
		fmt.Fprintf(out, "mnemonic is %s\n", res.Outcome)

		if res.Outcome == mnemonic.Malformed {
			return 1
		}

		return 0
	}

	fmt.Fprintln(out, "mnemonic is complete and valid")

	if job.Output != "" {
		if err := output.WriteFile(job.Output, []string{p.String()}); err != nil {
			fmt.Fprintf(errOut, "save: %v\n", err)
			return 1
		}

		logger.Info("saved mnemonics", "count", 1, "path", job.Output)
	}

	if !job.Quiet {
		fmt.Fprintln(out, p.String())
	}

	return 0
}
