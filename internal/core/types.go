// Package core provides the roster processing pipeline.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
)

// CaseFold selects how a text column is case-folded during normalization.
type CaseFold int

const (
	FoldNone CaseFold = iota
	FoldUpper
	FoldLower
)

// ColumnSpec describes how the normalizer treats a single column.
type ColumnSpec struct {
	Name string    // Column header name (matched exactly after trimming)
	Type FieldType // Date columns are parsed, text columns are trimmed and folded
	Fold CaseFold  // Only applies to FieldText
}

// Value is a single cell. It holds text, a date, or nothing (null).
type Value struct {
	Text pgtype.Text
	Date pgtype.Date
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// TextValue wraps s as a text value. The string is stored as-is.
func TextValue(s string) Value {
	return Value{Text: pgtype.Text{String: s, Valid: true}}
}

// DateValue wraps t as a date value.
func DateValue(t time.Time) Value {
	return Value{Date: pgtype.Date{Time: t, Valid: true}}
}

// IsNull reports whether the value holds neither text nor a date.
func (v Value) IsNull() bool {
	return !v.Text.Valid && !v.Date.Valid
}

// IsDate reports whether the value holds a parsed date.
func (v Value) IsDate() bool {
	return v.Date.Valid
}

// String renders the value for display and export.
// Dates use 2006-01-02, with a time-of-day suffix only when one is present.
func (v Value) String() string {
	switch {
	case v.Date.Valid:
		t := v.Date.Time
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(DateLayout)
		}
		return t.Format(DateTimeLayout)
	case v.Text.Valid:
		return v.Text.String
	default:
		return ""
	}
}

// Canonical output layouts for date values.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Row maps column name to value. A missing key reads as null.
type Row map[string]Value

// Get returns the value for col, or null if absent.
func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Null()
}

// Table is an ordered set of rows sharing a column list.
// Column order is preserved for display and export.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether the table contains col.
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Append adds a row built from values in column order.
// Extra values are ignored and missing values are null.
func (t *Table) Append(values ...Value) {
	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = Null()
		}
	}
	t.Rows = append(t.Rows, row)
}

// Values returns the column's values in row order.
func (t *Table) Values(col string) []Value {
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Get(col)
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns...)
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		cp := make(Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

// Project returns a copy restricted to cols, in that order.
// Columns the table does not have are read as null.
func (t *Table) Project(cols []string) *Table {
	out := NewTable(cols...)
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		cp := make(Row, len(cols))
		for _, c := range cols {
			cp[c] = row.Get(c)
		}
		out.Rows[i] = cp
	}
	return out
}

// AddColumn appends a column computed from each row.
// If the column already exists its values are replaced in place.
func (t *Table) AddColumn(name string, fn func(Row) Value) {
	if !t.Has(name) {
		t.Columns = append(t.Columns, name)
	}
	for _, row := range t.Rows {
		row[name] = fn(row)
	}
}

// DropColumn removes col from the column list and every row.
func (t *Table) DropColumn(col string) {
	idx := t.Index(col)
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx:idx], t.Columns[idx+1:]...)
	for _, row := range t.Rows {
		delete(row, col)
	}
}

// RenameColumn renames from to to, keeping its position.
func (t *Table) RenameColumn(from, to string) {
	idx := t.Index(from)
	if idx < 0 || from == to {
		return
	}
	t.Columns[idx] = to
	for _, row := range t.Rows {
		if v, ok := row[from]; ok {
			row[to] = v
			delete(row, from)
		}
	}
}

// Strings renders the table as header plus records, the shape encoding/csv expects.
func (t *Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(t.Columns))
	copy(header, t.Columns)
	out = append(out, header)
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			rec[i] = row.Get(col).String()
		}
		out = append(out, rec)
	}
	return out
}
