// Package output writes recovered phrases to files and terminals.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	dirPerm = 0o755
	// Recovered phrases are secrets.
	filePerm = 0o600
)

// LineWriter buffers phrases, one per line.
type LineWriter struct {
	bw    *bufio.Writer
	count int
}

// NewLineWriter returns a LineWriter over w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{bw: bufio.NewWriter(w)}
}

// WriteLine appends phrase and a newline.
func (lw *LineWriter) WriteLine(phrase string) error {
	if _, err := lw.bw.WriteString(phrase); err != nil {
		return err
	}

	if err := lw.bw.WriteByte('\n'); err != nil {
		return err
	}

	lw.count++

	return nil
}

// Count returns the number of lines written.
func (lw *LineWriter) Count() int { return lw.count }

// Flush writes buffered lines to the underlying writer.
func (lw *LineWriter) Flush() error { return lw.bw.Flush() }

// Write writes one phrase per line.
func Write(w io.Writer, phrases []string) error {
	lw := NewLineWriter(w)

	for _, p := range phrases {
		if err := lw.WriteLine(p); err != nil {
			return err
		}
	}

	return lw.Flush()
}

// File streams phrases to a path. The file is created, truncating any
// previous content, on the first WriteLine, so a run that finds nothing
// leaves no file behind.
type File struct {
	path string
	f    *os.File
	lw   *LineWriter
}

// NewFile returns a File for path. Nothing is opened yet.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the destination path.
func (f *File) Path() string { return f.path }

// Count returns the number of phrases written.
func (f *File) Count() int {
	if f.lw == nil {
		return 0
	}

	return f.lw.Count()
}

// WriteLine writes one phrase, opening the file if needed.
func (f *File) WriteLine(phrase string) error {
	if f.f == nil {
		if err := f.open(); err != nil {
			return err
		}
	}

	if err := f.lw.WriteLine(phrase); err != nil {
		return fmt.Errorf("writing %s: %w", f.path, err)
	}

	return nil
}

func (f *File) open() error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}

	f.f = file
	f.lw = NewLineWriter(file)

	return nil
}

// Close flushes and closes the file. It is a no-op when nothing was written.
func (f *File) Close() error {
	if f.f == nil {
		return nil
	}

	flushErr := f.lw.Flush()
	closeErr := f.f.Close()
	f.f = nil

	if flushErr != nil {
		return fmt.Errorf("writing %s: %w", f.path, flushErr)
	}

	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", f.path, closeErr)
	}

	return nil
}

// WriteFile writes phrases to path, creating parent directories and
// truncating any existing file. An empty list still creates the file.
func WriteFile(path string, phrases []string) error {
	f := NewFile(path)
	if err := f.open(); err != nil {
		return err
	}

	for _, p := range phrases {
		if err := f.WriteLine(p); err != nil {
			_ = f.Close()
			return err
		}
	}

	return f.Close()
}

// List writes a numbered listing for humans, starting at #1.
func List(w io.Writer, phrases []string) error {
	for i, p := range phrases {
		if err := ListItem(w, i+1, p); err != nil {
			return err
		}
	}

	return nil
}

// ListItem writes entry n of a numbered listing.
func ListItem(w io.Writer, n int, phrase string) error {
	_, err := fmt.Fprintf(w, "#%d: %s\n", n, phrase)
	return err
}
