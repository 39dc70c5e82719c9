package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"inflater-generator/internal/analyze"
	"inflater-generator/internal/common"
)

// Sink accepts diagnostics. sym may be nil.
type Sink interface {
	Report(severity DiagnosticSeverity, message string, sym *analyze.Symbol)
}

// Diagnostics holds all diagnostics reported to it.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Notices  []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Message is the human-readable description.
	Message string
	// Symbol is the source element the diagnostic is attributed to (if any).
	Symbol *analyze.Symbol
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticNotice
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticNotice:
		return "notice"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Report implements Sink.
func (d *Diagnostics) Report(severity DiagnosticSeverity, message string, sym *analyze.Symbol) {
	diag := Diagnostic{Severity: severity, Message: message, Symbol: sym}

	switch severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	case DiagnosticNotice:
		d.Notices = append(d.Notices, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	if d.Symbol == nil {
		return d.Message
	}

	if d.Symbol.Pos.IsValid() {
		return fmt.Sprintf("%s: [%s] %s", d.Symbol.Pos, d.Symbol.QualifiedName(), d.Message)
	}

	return fmt.Sprintf("[%s] %s", d.Symbol.QualifiedName(), d.Message)
}
