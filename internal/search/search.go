package search

import (
	"cmp"
	"context"
	"iter"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"hrnd/internal/mnemonic"
)

const (
	// DefaultChunkSize is the number of candidates handed to a worker at a time.
	DefaultChunkSize = 1 << 14
	// cancelCheckEvery bounds how many candidates run between context checks.
	cancelCheckEvery = 1 << 12
)

// Options configures Run.
type Options struct {
	// Workers bounds the worker pool; 0 means GOMAXPROCS. With one worker
	// matches are emitted in offset order.
	Workers int
	// Start and End select the offset range [Start, End); End 0 means the whole space.
	Start, End uint64
	// ChunkSize is the unit of work per worker; 0 means DefaultChunkSize.
	ChunkSize uint64
	// DisableShortcut forces a full scan when only the last word is missing.
	DisableShortcut bool
	// OnProgress receives the number of candidates covered so far and the
	// range size. Callbacks are never invoked concurrently.
	OnProgress func(done, total uint64)
}

// Stats summarizes a finished or aborted run.
type Stats struct {
	Total   uint64 // candidates in the requested range
	Covered uint64 // candidates accounted for before the run stopped
	// Resume is the offset below which every candidate was validated and
	// its matches emitted. Restarting with Start = Resume loses nothing.
	Resume   uint64
	Matches  uint64
	Shortcut bool
	Elapsed  time.Duration
	Workers  int
}

// Matches lazily walks [start, end) on the caller's goroutine and yields
// valid completions in offset order. An invalid range yields nothing.
func (s *Space) Matches(start, end uint64) iter.Seq[Match] {
	return s.matches(start, end, true)
}

func (s *Space) matches(start, end uint64, shortcut bool) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		start, end, err := s.bounds(start, end)
		if err != nil {
			return
		}

		if shortcut && s.lastWordOnly() {
			prefix := s.template[:len(s.template)-1]
			buf := slices.Clone(s.template)

			for w := range mnemonic.LastWords(prefix) {
				off := uint64(w)
				if off < start || off >= end {
					continue
				}

				buf[len(buf)-1] = w
				if !yield(Match{Offset: off, Words: s.Words(buf)}) {
					return
				}
			}

			return
		}

		for off, idx := range s.Candidates(start, end) {
			if mnemonic.ValidateIndices(idx) != mnemonic.Valid {
				continue
			}

			if !yield(Match{Offset: off, Words: s.Words(idx)}) {
				return
			}
		}
	}
}

// Run validates every candidate in the configured range and passes each
// valid completion to emit. With more than one worker, emit order is
// unspecified but every match is emitted exactly once. emit is never
// invoked concurrently; an error from emit or ctx stops the run.
func Run(ctx context.Context, s *Space, opts Options, emit func(Match) error) (Stats, error) {
	begin := time.Now()

	start, end, err := s.bounds(opts.Start, opts.End)
	if err != nil {
		return Stats{}, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	stats := Stats{Total: end - start, Resume: start, Workers: workers}

	var (
		mu      sync.Mutex
		stopped bool
		// finished holds completed chunks above the resume point, keyed by start.
		finished = map[uint64]uint64{}
	)

	report := func(lo, hi uint64) {
		stats.Covered += hi - lo

		finished[lo] = hi
		for {
			next, ok := finished[stats.Resume]
			if !ok {
				break
			}

			delete(finished, stats.Resume)
			stats.Resume = next
		}

		if opts.OnProgress != nil {
			opts.OnProgress(stats.Covered, stats.Total)
		}
	}

	found := func(m Match) error {
		stats.Matches++
		return emit(m)
	}

	shortcut := s.lastWordOnly() && !opts.DisableShortcut
	if shortcut || workers == 1 {
		stats.Shortcut = shortcut
		stats.Workers = 1

		err := runSequential(ctx, s, start, end, shortcut, found, report)
		stats.Elapsed = time.Since(begin)

		return stats, err
	}

	chunk := opts.ChunkSize
	if chunk == 0 {
		chunk = DefaultChunkSize
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := start; lo < end; lo += min(chunk, end-lo) {
		if gctx.Err() != nil {
			break
		}

		hi := lo + min(chunk, end-lo)

		g.Go(func() error {
			var local []Match

			n := uint64(0)
			for off, idx := range s.Candidates(lo, hi) {
				if n%cancelCheckEvery == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				n++

				if mnemonic.ValidateIndices(idx) == mnemonic.Valid {
					local = append(local, Match{Offset: off, Words: s.Words(idx)})
				}
			}

			mu.Lock()
			defer mu.Unlock()

			if stopped {
				return nil
			}

			for _, m := range local {
				if err := found(m); err != nil {
					stopped = true
					return err
				}
			}

			report(lo, hi)

			return nil
		})
	}

	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	stats.Elapsed = time.Since(begin)

	return stats, err
}

func runSequential(
	ctx context.Context,
	s *Space,
	start, end uint64,
	shortcut bool,
	found func(Match) error,
	report func(lo, hi uint64),
) error {
	if shortcut {
		for m := range s.matches(start, end, true) {
			if err := found(m); err != nil {
				return err
			}
		}

		report(start, end)

		return ctx.Err()
	}

	last := start
	n := uint64(0)

	for off, idx := range s.Candidates(start, end) {
		if n%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}

			if off > last {
				report(last, off)
				last = off
			}
		}
		n++

		if mnemonic.ValidateIndices(idx) != mnemonic.Valid {
			continue
		}

		if err := found(Match{Offset: off, Words: s.Words(idx)}); err != nil {
			return err
		}
	}

	report(last, end)

	return nil
}

// Collect runs the search and returns all matches sorted by offset, which
// is lexicographic order over the missing-slot word indices.
func Collect(ctx context.Context, s *Space, opts Options) ([]Match, Stats, error) {
	var out []Match

	stats, err := Run(ctx, s, opts, func(m Match) error {
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	SortByOffset(out)

	return out, stats, nil
}

// SortByOffset orders matches by offset.
func SortByOffset(ms []Match) {
	slices.SortFunc(ms, func(a, b Match) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
}
