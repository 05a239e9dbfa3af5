package core

// diagnostics.go defines the error taxonomy of the pipeline and the diagnostic
// list handed back to callers.
//
// Pipeline failures never escape as Go errors from Run. Each table is processed
// inside its own boundary and any failure is converted into a Diagnostic:
//
//   - SchemaError:  required columns missing, halts that table (error)
//   - DecodeError:  bytes could not be decoded or parsed, halts that table (error)
//   - ParseWarning: a value could not be parsed, it becomes null (warning)
//   - JoinSkipped:  seating file present but unusable, primary still emitted (warning)

import (
	"errors"
	"fmt"
	"strings"
)

// Severity tells the caller whether processing continued.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Table roles used in diagnostics.
const (
	TablePrimary = "primary"
	TableSeating = "seating"
)

// Diagnostic is a single human-readable message about a pipeline run.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
	Table    string   `json:"table,omitempty"`
	Message  string   `json:"message"`
	Action   string   `json:"action,omitempty"`
	Column   string   `json:"column,omitempty"`
	Value    string   `json:"value,omitempty"`
	Row      int      `json:"row,omitempty"` // 1-indexed data row, 0 when not row-specific
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []Diagnostic

// HasErrors reports whether any diagnostic has error severity.
func (d Diagnostics) HasErrors() bool {
	for _, x := range d {
		if x.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity diagnostics.
func (d Diagnostics) Errors() Diagnostics {
	return d.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics.
func (d Diagnostics) Warnings() Diagnostics {
	return d.filter(SeverityWarning)
}

func (d Diagnostics) filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, x := range d {
		if x.Severity == sev {
			out = append(out, x)
		}
	}
	return out
}

// ErrEmptyFile is returned when an input has no header row.
var ErrEmptyFile = errors.New("empty file: no header row found")

// SchemaError reports required columns absent from a table.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns in %s data: %s", e.Table, strings.Join(e.Missing, ", "))
}

// ParseWarning reports a value that could not be parsed as its column type.
type ParseWarning struct {
	Column string
	Value  string
	Row    int
}

func (e *ParseWarning) Error() string {
	return fmt.Sprintf("invalid date in %q at row %d: %q", e.Column, e.Row, e.Value)
}

// JoinSkipped reports that the seating join was not attempted.
type JoinSkipped struct {
	Reason error
}

func (e *JoinSkipped) Error() string {
	return fmt.Sprintf("seating join skipped: %v", e.Reason)
}

func (e *JoinSkipped) Unwrap() error {
	return e.Reason
}

// DecodeError reports input bytes that could not be turned into a table.
type DecodeError struct {
	Table    string
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Encoding != "" {
		return fmt.Sprintf("decode %s data (%s): %v", e.Table, e.Encoding, e.Err)
	}
	return fmt.Sprintf("decode %s data: %v", e.Table, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DiagnosticFromError converts a pipeline error into a diagnostic.
// Severity follows the taxonomy: schema and decode failures are errors,
// everything else is a warning. The user message comes from MapError.
func DiagnosticFromError(table string, err error) Diagnostic {
	msg := MapError(err)
	d := Diagnostic{
		Severity: SeverityWarning,
		Code:     msg.Code,
		Table:    table,
		Message:  err.Error(),
		Action:   msg.Action,
	}

	var (
		schemaErr *SchemaError
		decodeErr *DecodeError
		parseWarn *ParseWarning
		skipped   *JoinSkipped
	)
	switch {
	case errors.As(err, &skipped):
		// Checked first: a skipped join wraps the seating table's own failure.
		d.Severity = SeverityWarning
	case errors.As(err, &schemaErr):
		d.Severity = SeverityError
	case errors.As(err, &decodeErr):
		d.Severity = SeverityError
	case errors.As(err, &parseWarn):
		d.Column = parseWarn.Column
		d.Value = parseWarn.Value
		d.Row = parseWarn.Row
	}
	return d
}

// info builds an informational diagnostic.
func info(table, code, message string) Diagnostic {
	return Diagnostic{Severity: SeverityInfo, Code: code, Table: table, Message: message}
}

// warning builds a warning diagnostic with the mapped action for its message.
func warning(table, message string) Diagnostic {
	msg := MapError(errors.New(message))
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     msg.Code,
		Table:    table,
		Message:  message,
		Action:   msg.Action,
	}
}
