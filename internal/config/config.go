package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"hrnd/internal/recovery"
)

const currentVersion = "1"

var ErrInvalidJob = errors.New("config: invalid job")

// Job is one recovery job.
type Job struct {
	Version   string  `yaml:"version,omitempty"`
	Mnemonic  string  `yaml:"mnemonic"`
	Mode      string  `yaml:"mode,omitempty"`
	Threshold *float64 `yaml:"threshold,omitempty"`
	Workers   int     `yaml:"workers,omitempty"`
	Start     uint64  `yaml:"start,omitempty"`
	End       uint64  `yaml:"end,omitempty"`
	Output    string  `yaml:"output,omitempty"`
	Quiet     bool    `yaml:"quiet,omitempty"`
	// Wordlist is a path to a custom 2048-word list.
	Wordlist string `yaml:"wordlist,omitempty"`
}

// LoadFile loads and validates a job file.
func LoadFile(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML data into a Job. Unknown keys are rejected.
func Parse(data []byte) (*Job, error) {
	var job Job

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&job); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	applyDefaults(&job)

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return &job, nil
}

// Default returns a job with every optional field defaulted.
func Default() *Job {
	job := &Job{}
	applyDefaults(job)

	return job
}

func applyDefaults(job *Job) {
	if job.Version == "" {
		job.Version = currentVersion
	}

	if job.Mode == "" {
		job.Mode = recovery.ModeAuto.String()
	}
}

// Validate checks field ranges. The mnemonic itself is checked by recovery.
func (j *Job) Validate() error {
	if j.Version != currentVersion {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidJob, j.Version)
	}

	if _, err := recovery.ParseMode(j.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	if t := j.Threshold; t != nil && (*t < 0 || *t > 100) {
		return fmt.Errorf("%w: threshold %v outside [0, 100]", ErrInvalidJob, *t)
	}

	if j.Workers < 0 {
		return fmt.Errorf("%w: negative workers %d", ErrInvalidJob, j.Workers)
	}

	if j.End != 0 && j.End <= j.Start {
		return fmt.Errorf("%w: end %d must be greater than start %d", ErrInvalidJob, j.End, j.Start)
	}

	return nil
}

// Options converts the job into recovery options. Callbacks are left unset.
func (j *Job) Options() (recovery.Options, error) {
	mode, err := recovery.ParseMode(j.Mode)
	if err != nil {
		return recovery.Options{}, err
	}

	return recovery.Options{
		Mode:      mode,
		Workers:   j.Workers,
		Threshold: j.Threshold,
		Start:     j.Start,
		End:       j.End,
	}, nil
}

// Marshal serializes a Job to YAML.
func Marshal(j *Job) ([]byte, error) {
	return yaml.Marshal(j)
}

// WriteFile writes a Job to path.
func WriteFile(j *Job, path string) error {
	data, err := Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write job file %s: %w", path, err)
	}

	return nil
}
