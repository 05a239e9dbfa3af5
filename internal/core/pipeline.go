package core

// pipeline.go wires the stages together for one invocation.
//
// Flow:
//
//	primary bytes -> decode -> validate -> project -> normalize -> derive --+
//	seating bytes -> decode -> validate -> project -------------------------+-> join -> encode
//
// Each table is processed inside its own boundary. A failure there becomes a
// diagnostic and never escapes Run: a broken roster halts the run, a broken
// seating file only skips the join.

import (
	"context"
)

// Informational messages reported on success or when nothing was uploaded.
const (
	MsgNoPrimary      = "Please upload the main employee data CSV to get started"
	MsgProcessed      = "Data processed successfully"
	MsgProcessedJoin  = "Data processed with seating details"
	MsgSeatingIgnored = "Seating file was checked but not joined because the main file failed"
)

// Input holds the raw uploads. A nil slice means the file was not uploaded.
type Input struct {
	Primary []byte
	Seating []byte
}

// Result is everything a caller needs to render or download a run.
type Result struct {
	RunID          string // Assigned by Service; empty from Run
	Profile        string
	Table          *Table   // Nil when the roster failed
	PrimaryColumns []string // Header of the uploaded roster, as detected
	SeatingColumns []string // Header of the uploaded seating file, as detected
	Joined         bool
	FileName       string
	CSV            []byte
	Join           *JoinReport
	Diagnostics    Diagnostics
}

// OK reports whether the run produced a table.
func (r *Result) OK() bool {
	return r.Table != nil && !r.Diagnostics.HasErrors()
}

// Run processes one roster and optional seating file under profile p.
//
// Run is a pure function of its inputs: identical bytes and profile always
// yield identical tables, CSV and diagnostics. ctx is checked between stages.
func Run(ctx context.Context, p Profile, in Input) *Result {
	res := &Result{Profile: p.Name}

	if in.Primary == nil {
		res.Diagnostics = append(res.Diagnostics, info(TablePrimary, "", MsgNoPrimary))
		return res
	}
	if res.canceled(ctx) {
		return res
	}

	primary, perr := res.processPrimary(p, in.Primary)

	var (
		seating *Table
		serr    error
	)
	if in.Seating != nil {
		seating, serr = res.processSeating(p, in.Seating)
	}

	if perr != nil {
		res.Diagnostics = append(res.Diagnostics, DiagnosticFromError(TablePrimary, perr))
		if in.Seating != nil {
			if serr != nil {
				res.Diagnostics = append(res.Diagnostics, DiagnosticFromError(TableSeating, serr))
			} else {
				res.Diagnostics = append(res.Diagnostics, info(TableSeating, "", MsgSeatingIgnored))
			}
		}
		return res
	}
	if res.canceled(ctx) {
		return res
	}

	out := primary
	switch {
	case in.Seating == nil:
	case serr != nil:
		res.Diagnostics = append(res.Diagnostics, DiagnosticFromError(TableSeating, &JoinSkipped{Reason: serr}))
	default:
		merged, report := LeftJoin(primary, seating, p.IdentifierColumn, p.SeatingIdentifier)
		if len(report.DuplicateKeys) > 0 {
			res.Diagnostics = append(res.Diagnostics, duplicateKeyWarning(report.DuplicateKeys))
		}
		out = merged
		res.Join = &report
		res.Joined = true
	}

	data, err := EncodeCSV(out)
	if err != nil {
		d := DiagnosticFromError(TablePrimary, err)
		d.Severity = SeverityError
		res.Diagnostics = append(res.Diagnostics, d)
		return res
	}

	res.Table = out
	res.CSV = data
	if res.Joined {
		res.FileName = FileWithSeating
		res.Diagnostics = append(res.Diagnostics, info(TablePrimary, "", MsgProcessedJoin))
	} else {
		res.FileName = FileProcessed
		res.Diagnostics = append(res.Diagnostics, info(TablePrimary, "", MsgProcessed))
	}
	return res
}

// processPrimary decodes, validates, normalizes and derives the roster.
// Layout warnings and parse warnings are appended to the result as they occur.
func (res *Result) processPrimary(p Profile, data []byte) (*Table, error) {
	t, diags, err := DecodeTable(data, DecodeOptions{Table: TablePrimary, Encoding: p.Encoding})
	if err != nil {
		return nil, err
	}
	res.Diagnostics = append(res.Diagnostics, diags...)
	res.PrimaryColumns = append([]string(nil), t.Columns...)

	if err := Validate(t, p.PrimaryColumns).Err(TablePrimary); err != nil {
		return nil, err
	}
	if p.ProjectPrimary {
		t = t.Project(p.PrimaryColumns)
	}

	t, diags = Normalize(t, p.NormalizeSpecs(), TablePrimary)
	res.Diagnostics = append(res.Diagnostics, diags...)

	Derive(t, p.Derivation())
	return t, nil
}

// processSeating decodes and validates the seating file and projects it to
// the profile's seating columns.
func (res *Result) processSeating(p Profile, data []byte) (*Table, error) {
	t, diags, err := DecodeTable(data, DecodeOptions{Table: TableSeating, Encoding: p.Encoding})
	if err != nil {
		return nil, err
	}
	res.Diagnostics = append(res.Diagnostics, diags...)
	res.SeatingColumns = append([]string(nil), t.Columns...)

	if err := Validate(t, p.SeatingColumns).Err(TableSeating); err != nil {
		return nil, err
	}
	return t.Project(p.SeatingColumns), nil
}

func (res *Result) canceled(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		d := DiagnosticFromError("", err)
		d.Severity = SeverityError
		res.Diagnostics = append(res.Diagnostics, d)
		return true
	}
	return false
}
