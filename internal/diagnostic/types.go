package diagnostic

import (
	"fmt"
	"strings"
)

// Diagnostic codes emitted by the recovery flow.
const (
	CodeMissingPositions = "MISSING_POSITIONS"
	CodeCorrected        = "CORRECTED"
	CodeAmbiguous        = "AMBIGUOUS"
	CodeNoMatch          = "NO_MATCH"
	CodeChecksum         = "CHECKSUM"
	CodeNoResults        = "NO_RESULTS"
	CodeSearchSpace      = "SEARCH_SPACE"
)

// Diagnostics holds all diagnostic information from one recovery.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Position is the 1-based word position this relates to, 0 if none.
	Position int
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	Info    Severity = iota // info
	Warning                 // warning
	Error                   // error
)

// Add appends d to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case Error:
		d.Errors = append(d.Errors, diag)
	case Warning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic and returns it.
func (d *Diagnostics) AddError(code, message string, position int) Diagnostic {
	diag := Diagnostic{Severity: Error, Code: code, Message: message, Position: position}
	d.Add(diag)

	return diag
}

// AddWarning adds a warning diagnostic and returns it.
func (d *Diagnostics) AddWarning(code, message string, position int) Diagnostic {
	diag := Diagnostic{Severity: Warning, Code: code, Message: message, Position: position}
	d.Add(diag)

	return diag
}

// AddInfo adds an info diagnostic and returns it.
func (d *Diagnostics) AddInfo(code, message string, position int) Diagnostic {
	diag := Diagnostic{Severity: Info, Code: code, Message: message, Position: position}
	d.Add(diag)

	return diag
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// ByCode returns every diagnostic with the given code, errors first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Position > 0 {
		msg = fmt.Sprintf("word %d: %s", d.Position, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	return msg
}
