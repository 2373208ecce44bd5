package recovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hrnd/internal/diagnostic"
	"hrnd/internal/match"
	"hrnd/internal/mnemonic"
	"hrnd/internal/search"
	"hrnd/internal/wordlist"
)

var ErrNoMissingMarkers = errors.New("recovery: no missing-word markers found, use ____ or ? for unknown words")

// Options configures a single Recover call.
type Options struct {
	Mode Mode
	// Workers bounds search and correction concurrency; 0 means GOMAXPROCS.
	Workers int
	// Threshold overrides match.DefaultThreshold when set. Zero accepts any
	// best match with a positive score.
	Threshold *float64
	// Scorer overrides match.Ratio.
	Scorer match.Scorer
	// Start and End restrict the search to an offset range; End 0 means all.
	Start, End uint64

	// OnDiagnostic receives every diagnostic as it is produced.
	OnDiagnostic func(diagnostic.Diagnostic)
	// OnProgress receives search progress.
	OnProgress func(done, total uint64)
	// OnFound receives each valid phrase as the search finds it. With more
	// than one worker the order is unspecified. An error stops the search.
	OnFound func(phrase string) error
	// Discard drops phrases once OnFound has seen them, leaving
	// Result.Candidates empty. Searches with three or more missing words
	// can produce more phrases than fit in memory.
	Discard bool
}

// Result is the outcome of one recovery.
type Result struct {
	// Mode is the mode that actually ran, never ModeAuto.
	Mode  Mode
	Input mnemonic.Phrase
	// Phrase is the input after typo correction.
	Phrase mnemonic.Phrase
	// Outcome is the validation outcome of Phrase in correct mode, and
	// Malformed in search mode when a known word could not be resolved.
	Outcome     mnemonic.Outcome
	Corrections []match.CorrectionRecord
	// Candidates are the valid completions in lexicographic order of the
	// missing-slot word indices. After a cancelled search they hold what was
	// found before the cancellation.
	Candidates  []string
	Missing     []int
	Stats       search.Stats
	Diagnostics diagnostic.Diagnostics
}

// Validated returns the corrected phrase when it passed validation.
func (r *Result) Validated() (mnemonic.Phrase, bool) {
	if r.Mode != ModeCorrect || r.Outcome != mnemonic.Valid {
		return mnemonic.Phrase{}, false
	}

	return r.Phrase, true
}

// Recoverer runs recoveries against one wordlist.
type Recoverer struct {
	wl        *wordlist.WordList
	validator *mnemonic.Validator
}

// New returns a Recoverer. A nil wl selects the English list.
func New(wl *wordlist.WordList) *Recoverer {
	v := mnemonic.NewValidator(wl)

	return &Recoverer{wl: v.WordList(), validator: v}
}

// run carries the per-call state of one Recover.
type run struct {
	opts   Options
	result *Result
}

func (r *run) diag(d diagnostic.Diagnostic) {
	r.result.Diagnostics.Add(d)
	r.notify(d)
}

func (r *run) info(code, msg string) { r.notify(r.result.Diagnostics.AddInfo(code, msg, 0)) }

func (r *run) warn(code, msg string) { r.notify(r.result.Diagnostics.AddWarning(code, msg, 0)) }

func (r *run) fail(code, msg string) { r.notify(r.result.Diagnostics.AddError(code, msg, 0)) }

func (r *run) notify(d diagnostic.Diagnostic) {
	if r.opts.OnDiagnostic != nil {
		r.opts.OnDiagnostic(d)
	}
}

// Recover parses raw, picks a mode and returns the result. Errors are
// returned for input that cannot be processed at all: an illegal word count,
// a forced search without markers, an oversized search space or a cancelled
// context. A search with zero completions is a result, not an error.
//
// In search mode the known words also go through typo correction before the
// search starts, so a mistyped word next to a missing one still resolves.
// The search is skipped when a known word has no close match.
//
// A cancelled search returns a non-nil Result alongside the error, with the
// phrases found so far and Stats.Resume set for a later call.
func (rc *Recoverer) Recover(ctx context.Context, raw string, opts Options) (*Result, error) {
	phrase := mnemonic.Parse(raw)
	if err := mnemonic.CheckLength(phrase.Len()); err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == ModeAuto {
		mode = ModeCorrect
		if !phrase.Complete() {
			mode = ModeSearch
		}
	}

	r := &run{
		opts: opts,
		result: &Result{
			Mode:    mode,
			Input:   phrase,
			Phrase:  phrase,
			Missing: phrase.Missing(),
		},
	}

	switch mode {
	case ModeSearch:
		if phrase.Complete() {
			return nil, ErrNoMissingMarkers
		}

		return r.result, rc.search(ctx, r)
	case ModeCorrect:
		return r.result, rc.correct(ctx, r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

func (rc *Recoverer) corrector(opts Options) *match.Corrector {
	return &match.Corrector{
		WordList:  rc.wl,
		Scorer:    opts.Scorer,
		Threshold: opts.Threshold,
		Workers:   opts.Workers,
	}
}

// fix runs the typo corrector over the known slots of the phrase and reports
// each record. It returns the number of tokens left unresolved.
func (rc *Recoverer) fix(ctx context.Context, r *run) (int, error) {
	in := r.result.Input
	tokens := in.Tokens()

	// Placeholders are not typos.
	known := make([]string, 0, len(tokens))
	positions := make([]int, 0, len(tokens))

	for i, tok := range tokens {
		if in.Slot(i).Missing && r.result.Mode == ModeSearch {
			continue
		}

		known = append(known, tok)
		positions = append(positions, i)
	}

	fixed, records, err := rc.corrector(r.opts).Correct(ctx, known)
	if err != nil {
		return 0, err
	}

	slots := make([]mnemonic.Slot, len(tokens))
	for i := range tokens {
		slots[i] = in.Slot(i)
	}

	for j, p := range positions {
		slots[p].Word = fixed[j]
	}

	unresolved := 0

	for _, rec := range records {
		rec.Position = positions[rec.Position]
		r.result.Corrections = append(r.result.Corrections, rec)

		if !rec.Corrected {
			unresolved++
		}

		r.diag(correctionDiagnostic(rec))
	}

	r.result.Phrase = mnemonic.NewPhrase(slots)

	return unresolved, nil
}

func correctionDiagnostic(rec match.CorrectionRecord) diagnostic.Diagnostic {
	suggestions := make([]string, 0, len(rec.Alternatives))
	for _, alt := range rec.Alternatives {
		suggestions = append(suggestions, alt.Word)
	}

	d := diagnostic.Diagnostic{Position: rec.Position + 1}

	switch {
	case !rec.Corrected:
		d.Severity = diagnostic.Warning
		d.Code = diagnostic.CodeNoMatch
		d.Message = fmt.Sprintf("no close match for %q (best score %.1f)", rec.Original, rec.Score)
		d.Suggestions = suggestions
	case rec.Ambiguous:
		d.Severity = diagnostic.Warning
		d.Code = diagnostic.CodeAmbiguous
		d.Message = fmt.Sprintf("corrected %q to %q (score %.1f) but other words score close", rec.Original, rec.Replacement, rec.Score)
		d.Suggestions = suggestions[1:]
	default:
		d.Severity = diagnostic.Info
		d.Code = diagnostic.CodeCorrected
		d.Message = fmt.Sprintf("corrected %q to %q (score %.1f)", rec.Original, rec.Replacement, rec.Score)
	}

	return d
}

func (rc *Recoverer) correct(ctx context.Context, r *run) error {
	unresolved, err := rc.fix(ctx, r)
	if err != nil {
		return err
	}

	r.result.Outcome = rc.validator.ValidatePhrase(r.result.Phrase)

	switch r.result.Outcome {
	case mnemonic.Valid:
		r.info(diagnostic.CodeChecksum, "mnemonic is complete and valid")
	case mnemonic.Invalid:
		r.fail(diagnostic.CodeChecksum, "checksum mismatch: at least one word is wrong")
	default:
		r.fail(diagnostic.CodeChecksum, fmt.Sprintf("mnemonic is malformed: %d word(s) could not be resolved", unresolved))
	}

	return nil
}

func (rc *Recoverer) search(ctx context.Context, r *run) error {
	res := r.result

	r.info(diagnostic.CodeMissingPositions, "detected missing word positions " + formatPositions(res.Missing))

	unresolved, err := rc.fix(ctx, r)
	if err != nil {
		return err
	}

	if unresolved > 0 {
		res.Outcome = mnemonic.Malformed
		r.fail(diagnostic.CodeNoResults, fmt.Sprintf("search skipped: %d known word(s) are not in the wordlist", unresolved))

		return nil
	}

	space, err := search.NewSpace(res.Phrase, rc.wl)
	if err != nil {
		return err
	}

	r.info(diagnostic.CodeSearchSpace, fmt.Sprintf("searching %d candidate(s)", space.Size()))

	var (
		matches []search.Match
		found   uint64
	)

	stats, err := search.Run(ctx, space, search.Options{
		Workers:    r.opts.Workers,
		Start:      r.opts.Start,
		End:        r.opts.End,
		OnProgress: r.opts.OnProgress,
	}, func(m search.Match) error {
		if r.opts.OnFound != nil {
			if err := r.opts.OnFound(m.String()); err != nil {
				return err
			}
		}

		found++
		if !r.opts.Discard {
			matches = append(matches, m)
		}

		return nil
	})
	res.Stats = stats

	// Kept on the error path too, so an interrupted run loses nothing.
	search.SortByOffset(matches)

	res.Candidates = make([]string, len(matches))
	for i, m := range matches {
		res.Candidates[i] = m.String()
	}

	if err != nil {
		return err
	}

	if found == 0 {
		res.Outcome = mnemonic.Invalid
		r.warn(diagnostic.CodeNoResults, "no valid mnemonics found")
	} else {
		res.Outcome = mnemonic.Valid
	}

	return nil
}

func formatPositions(ps []int) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprint(p + 1)
	}

	return strings.Join(parts, ", ")
}
