package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrnd/internal/recovery"
)

func TestParse(t *testing.T) {
	yaml := `
mnemonic: "abandon abandon ____ about"
mode: search
threshold: 80
workers: 4
start: 10
end: 20
output: found.txt
quiet: true
`
	job, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", job.Version)
	assert.Equal(t, "abandon abandon ____ about", job.Mnemonic)
	assert.Equal(t, "search", job.Mode)
	require.NotNil(t, job.Threshold)
	assert.InDelta(t, 80.0, *job.Threshold, 1e-9)
	assert.Equal(t, 4, job.Workers)
	assert.Equal(t, uint64(10), job.Start)
	assert.Equal(t, uint64(20), job.End)
	assert.Equal(t, "found.txt", job.Output)
	assert.True(t, job.Quiet)

	opts, err := job.Options()
	require.NoError(t, err)
	assert.Equal(t, recovery.ModeSearch, opts.Mode)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, uint64(10), opts.Start)
	assert.Equal(t, uint64(20), opts.End)
	require.NotNil(t, opts.Threshold)
	assert.InDelta(t, 80.0, *opts.Threshold, 1e-9)
}

func TestParse_ZeroThreshold(t *testing.T) {
	job, err := Parse([]byte("threshold: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, job.Threshold, "an explicit zero is kept")
	assert.Zero(t, *job.Threshold)

	opts, err := job.Options()
	require.NoError(t, err)
	require.NotNil(t, opts.Threshold)
	assert.Zero(t, *opts.Threshold)
}

func TestParse_Defaults(t *testing.T) {
	job, err := Parse([]byte(`mnemonic: "x"`))
	require.NoError(t, err)

	assert.Equal(t, "1", job.Version)
	assert.Equal(t, "auto", job.Mode)
	assert.Nil(t, job.Threshold, "absent threshold keeps the corrector default")

	job, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "auto", job.Mode)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "mnemonic: x\nthreshhold: 50\n"},
		{"bad mode", "mode: guess\n"},
		{"bad version", "version: \"2\"\n"},
		{"threshold too high", "threshold: 101\n"},
		{"negative threshold", "threshold: -1\n"},
		{"negative workers", "workers: -2\n"},
		{"empty range", "start: 5\nend: 5\n"},
		{"malformed yaml", "mnemonic: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidJob)
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	in := &Job{Mnemonic: "abandon ? about", Mode: "search", Workers: 2, End: 100}

	require.NoError(t, WriteFile(in, path))

	out, err := LoadFile(path)
	require.NoError(t, err)

	in.Version = currentVersion
	assert.Equal(t, in, out)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	job := Default()
	require.NoError(t, job.Validate())
	assert.Equal(t, "auto", job.Mode)

	opts, err := job.Options()
	require.NoError(t, err)
	assert.Equal(t, recovery.ModeAuto, opts.Mode)
}
