package match

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"hrnd/internal/wordlist"
)

const (
	// DefaultThreshold is the score a best match must exceed to replace a token.
	DefaultThreshold = 70.0
	// DefaultAmbiguityGap is the score difference below which the top two
	// candidates are reported as ambiguous.
	DefaultAmbiguityGap = 5.0
	// alternatives kept on each record for explanation.
	alternatives = 3
)

// CorrectionRecord describes what happened to one out-of-vocabulary token.
type CorrectionRecord struct {
	Position    int
	Original    string
	Replacement string // empty when Corrected is false
	Score       float64
	Corrected   bool
	Ambiguous   bool
	// Alternatives are the highest-scoring words, best first.
	Alternatives CandidateList
}

// Corrector maps tokens that are not in the wordlist onto the closest word.
// The zero value uses the English list, Ratio and DefaultThreshold.
type Corrector struct {
	WordList *wordlist.WordList
	Scorer   Scorer
	// Threshold is the score a best match must exceed; nil means
	// DefaultThreshold. Zero accepts any match with a positive score.
	Threshold *float64
	// Workers bounds concurrent token scoring; 0 means GOMAXPROCS.
	Workers int
}

func (c *Corrector) wordList() *wordlist.WordList {
	if c.WordList == nil {
		return wordlist.English()
	}

	return c.WordList
}

func (c *Corrector) threshold() float64 {
	if c.Threshold == nil {
		return DefaultThreshold
	}

	return *c.Threshold
}

// Resolve scores a single token. ok is false when token is already a word,
// in which case no record is produced.
func (c *Corrector) Resolve(position int, token string) (rec CorrectionRecord, ok bool) {
	wl := c.wordList()
	if wl.Contains(token) {
		return CorrectionRecord{}, false
	}

	ranked := RankCandidates(CleanToken(token), wl, c.Scorer)
	best := ranked.Best()

	rec = CorrectionRecord{
		Position:     position,
		Original:     token,
		Score:        best.Score,
		Ambiguous:    ranked.IsAmbiguous(DefaultAmbiguityGap),
		Alternatives: append(CandidateList(nil), ranked.Top(alternatives)...),
	}

	if best.Score > c.threshold() {
		rec.Corrected = true
		rec.Replacement = best.Word
	}

	return rec, true
}

// Correct returns tokens with every correctable out-of-vocabulary token
// replaced, plus one record per token that was not already a word, in
// position order. Tokens are scored concurrently.
func (c *Corrector) Correct(ctx context.Context, tokens []string) ([]string, []CorrectionRecord, error) {
	out := make([]string, len(tokens))
	copy(out, tokens)

	found := make([]*CorrectionRecord, len(tokens))

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, tok := range tokens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rec, ok := c.Resolve(i, tok)
			if !ok {
				return nil
			}

			found[i] = &rec
			if rec.Corrected {
				out[i] = rec.Replacement
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var records []CorrectionRecord

	for _, rec := range found {
		if rec != nil {
			records = append(records, *rec)
		}
	}

	return out, records, nil
}
