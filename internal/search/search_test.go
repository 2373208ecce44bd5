package search

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"hrnd/internal/mnemonic"
	"hrnd/internal/wordlist"
)

const lastMissing = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon ____"

func newSpace(t *testing.T, raw string) *Space {
	t.Helper()

	s, err := NewSpace(mnemonic.Parse(raw), nil)
	require.NoError(t, err)

	return s
}

func phrases(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}

	return out
}

func TestNewSpace(t *testing.T) {
	s := newSpace(t, "____ abandon abandon abandon ? abandon abandon abandon abandon abandon abandon ____")

	assert.Equal(t, 12, s.Len())
	assert.Equal(t, []int{0, 4, 11}, s.Missing())
	assert.Equal(t, uint64(wordlist.Size*wordlist.Size*wordlist.Size), s.Size())
}

func TestNewSpace_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{"thirteen words", lastMissing + " abandon", mnemonic.ErrInvalidLength},
		{"unknown word", strings.Replace(lastMissing, "abandon", "abandn", 1), mnemonic.ErrUnknownWord},
		{"six missing", strings.Repeat("? ", 6) + strings.Repeat("abandon ", 6), ErrSpaceTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpace(mnemonic.Parse(tt.raw), wordlist.English())
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSpace_DecodeOffset(t *testing.T) {
	s := newSpace(t, "? abandon abandon ? abandon abandon abandon abandon abandon abandon abandon zoo")
	buf := make([]uint16, s.Len())

	s.Decode(0, buf)
	assert.Equal(t, uint16(0), buf[0])
	assert.Equal(t, uint16(0), buf[3])
	assert.Equal(t, uint16(2047), buf[11], "known slots come from the phrase")

	// The rightmost missing slot varies fastest.
	s.Decode(1, buf)
	assert.Equal(t, []uint16{0, 1}, []uint16{buf[0], buf[3]})

	s.Decode(wordlist.Size, buf)
	assert.Equal(t, []uint16{1, 0}, []uint16{buf[0], buf[3]})

	for _, off := range []uint64{0, 7, 2047, 2048, 123456, s.Size() - 1} {
		s.Decode(off, buf)
		assert.Equal(t, off, s.Offset(buf))
	}
}

func TestSpace_CandidatesOrder(t *testing.T) {
	s := newSpace(t, "? abandon abandon ? abandon abandon abandon abandon abandon abandon abandon abandon")
	buf := make([]uint16, s.Len())

	var offsets []uint64

	for off, idx := range s.Candidates(2040, 2060) {
		s.Decode(off, buf)
		require.Equal(t, buf, idx)
		offsets = append(offsets, off)
	}

	require.Len(t, offsets, 20)
	assert.True(t, slices.IsSorted(offsets))
	assert.Equal(t, uint64(2040), offsets[0])
}

func TestSpace_Candidates_EmptyRange(t *testing.T) {
	s := newSpace(t, lastMissing)

	count := 0
	for range s.Candidates(10, 10) {
		count++
	}
	assert.Zero(t, count)
}

func TestMatches_LastWordMissing(t *testing.T) {
	s := newSpace(t, lastMissing)

	got := slices.Collect(s.Matches(0, 0))

	require.Len(t, got, 128)
	assert.Equal(t, strings.Replace(lastMissing, "____", "about", 1), got[0].String())
	assert.Contains(t, phrases(got), strings.Replace(lastMissing, "____", "about", 1))

	for _, m := range got {
		require.True(t, bip39.IsMnemonicValid(m.String()), m.String())
	}
}

func TestRun_ShortcutMatchesFullScan(t *testing.T) {
	s := newSpace(t, lastMissing)

	fast, fastStats, err := Collect(context.Background(), s, Options{})
	require.NoError(t, err)
	assert.True(t, fastStats.Shortcut)

	full, fullStats, err := Collect(context.Background(), s, Options{DisableShortcut: true, Workers: 4, ChunkSize: 100})
	require.NoError(t, err)
	assert.False(t, fullStats.Shortcut)

	assert.Equal(t, fast, full)
	assert.Equal(t, uint64(wordlist.Size), fullStats.Covered)
	assert.Equal(t, uint64(128), fullStats.Matches)
}

func TestRun_MiddleSlotIsCompleteAndSound(t *testing.T) {
	raw := "legal winner thank year wave ____ worth useful legal winner thank yellow"
	s := newSpace(t, raw)
	wl := wordlist.English()

	var expected []string

	for w := range uint16(wordlist.Size) {
		candidate := strings.Replace(raw, "____", wl.WordAt(w), 1)
		if bip39.IsMnemonicValid(candidate) {
			expected = append(expected, candidate)
		}
	}

	require.Contains(t, expected, "legal winner thank year wave sausage worth useful legal winner thank yellow")

	for _, workers := range []int{1, 2, 8} {
		got, stats, err := Collect(context.Background(), s, Options{Workers: workers, ChunkSize: 97})
		require.NoError(t, err)
		assert.Equal(t, expected, phrases(got), "workers=%d", workers)
		assert.Equal(t, stats.Total, stats.Covered)
	}

	assert.Equal(t, expected, phrases(slices.Collect(s.Matches(0, 0))))
}

func TestRun_TwoSlotsPartitionedRange(t *testing.T) {
	s := newSpace(t, "____ abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon ____")
	opts := Options{Start: 5 * wordlist.Size, End: 9 * wordlist.Size}

	opts.Workers = 1
	sequential, _, err := Collect(context.Background(), s, opts)
	require.NoError(t, err)
	require.NotEmpty(t, sequential)

	opts.Workers = 6
	opts.ChunkSize = 1000
	parallel, stats, err := Collect(context.Background(), s, opts)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
	assert.Equal(t, uint64(4*wordlist.Size), stats.Total)

	// Splitting the range in two gives the same result.
	opts.End = 7 * wordlist.Size
	first, _, err := Collect(context.Background(), s, opts)
	require.NoError(t, err)

	opts.Start, opts.End = 7*wordlist.Size, 9*wordlist.Size
	second, _, err := Collect(context.Background(), s, opts)
	require.NoError(t, err)

	assert.Equal(t, sequential, append(first, second...))

	for _, m := range sequential {
		assert.GreaterOrEqual(t, m.Offset, uint64(5*wordlist.Size))
		assert.Less(t, m.Offset, uint64(9*wordlist.Size))
		// first word index is the high digit of the offset
		assert.Contains(t, []string{"abandon", "ability", "able", "about", "above", "absent", "absorb", "abstract", "absurd", "abuse"}, m.Words[0])
	}
}

func TestRun_NoMissingSlots(t *testing.T) {
	valid := newSpace(t, strings.Replace(lastMissing, "____", "about", 1))
	assert.Equal(t, uint64(1), valid.Size())

	got, _, err := Collect(context.Background(), valid, Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	invalid := newSpace(t, strings.Replace(lastMissing, "____", "abandon", 1))
	got, _, err = Collect(context.Background(), invalid, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRun_InvalidRange(t *testing.T) {
	s := newSpace(t, lastMissing)

	_, err := Run(context.Background(), s, Options{Start: 10, End: 5}, func(Match) error { return nil })
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = Run(context.Background(), s, Options{End: wordlist.Size + 1}, func(Match) error { return nil })
	require.ErrorIs(t, err, ErrInvalidRange)

	assert.Empty(t, slices.Collect(s.Matches(10, 5)))
}

func TestRun_Cancelled(t *testing.T) {
	s := newSpace(t, "____ abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon ____")

	for _, workers := range []int{1, 4} {
		ctx, cancel := context.WithCancel(context.Background())

		var calls atomic.Int64

		stats, err := Run(ctx, s, Options{
			Workers: workers,
			OnProgress: func(done, total uint64) {
				if calls.Add(1) == 2 {
					cancel()
				}
			},
		}, func(Match) error { return nil })

		require.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
		assert.Less(t, stats.Covered, stats.Total)
		cancel()
	}
}

func TestRun_CancelledResumeIsContiguous(t *testing.T) {
	s := newSpace(t, "____ abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon ____")

	for _, workers := range []int{1, 4} {
		ctx, cancel := context.WithCancel(context.Background())
		seen := map[uint64]bool{}

		stats, err := Run(ctx, s, Options{Workers: workers, ChunkSize: 256}, func(m Match) error {
			seen[m.Offset] = true
			if len(seen) == 500 {
				cancel()
			}

			return nil
		})
		cancel()

		require.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
		assert.Positive(t, stats.Resume, "workers=%d", workers)
		assert.LessOrEqual(t, stats.Resume, stats.Covered, "workers=%d", workers)
		assert.Less(t, stats.Resume, stats.Total, "workers=%d", workers)

		below, _, err := Collect(context.Background(), s, Options{Workers: 1, End: stats.Resume})
		require.NoError(t, err)

		for _, m := range below {
			assert.True(t, seen[m.Offset], "workers=%d: match at %d below resume point was not emitted", workers, m.Offset)
		}
	}
}

func TestRun_ResumeCompletesRange(t *testing.T) {
	s := newSpace(t, "legal winner thank year wave ____ worth useful legal winner thank yellow")

	stats, err := Run(context.Background(), s, Options{Workers: 3, ChunkSize: 100}, func(Match) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, uint64(wordlist.Size), stats.Resume)

	stats, err = Run(context.Background(), s, Options{Workers: 1, Start: 500}, func(Match) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, uint64(wordlist.Size), stats.Resume)
}

func TestRun_EmitErrorStops(t *testing.T) {
	s := newSpace(t, "legal winner thank year wave ____ worth useful legal winner thank yellow")
	stop := errors.New("enough")

	for _, workers := range []int{1, 3} {
		emitted := 0
		_, err := Run(context.Background(), s, Options{Workers: workers, ChunkSize: 64}, func(Match) error {
			emitted++
			return stop
		})

		require.ErrorIs(t, err, stop)
		assert.Equal(t, 1, emitted)
	}
}

func TestRun_ProgressIsMonotonic(t *testing.T) {
	s := newSpace(t, "legal winner thank year wave ____ worth useful legal winner thank yellow")

	var seen []uint64

	stats, err := Run(context.Background(), s, Options{Workers: 4, ChunkSize: 256, OnProgress: func(done, total uint64) {
		assert.Equal(t, uint64(wordlist.Size), total)
		seen = append(seen, done)
	}}, func(Match) error { return nil })
	require.NoError(t, err)

	require.NotEmpty(t, seen)
	assert.True(t, slices.IsSorted(seen))
	assert.Equal(t, uint64(wordlist.Size), seen[len(seen)-1])
	assert.Equal(t, stats.Total, stats.Covered)
}

func BenchmarkValidateIndices(b *testing.B) {
	s, err := NewSpace(mnemonic.Parse(lastMissing), nil)
	if err != nil {
		b.Fatal(err)
	}

	buf := make([]uint16, s.Len())
	s.Decode(3, buf)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		mnemonic.ValidateIndices(buf)
	}
}
