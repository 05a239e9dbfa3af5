package core

import (
	"slices"
	"strings"
)

// Normalize returns a copy of t with the configured columns normalized.
//
// Date columns are parsed leniently: a value that cannot be read becomes null
// and yields a ParseWarning diagnostic. All-numeric dates are read month-first
// unless some value in the column only makes sense day-first, in which case
// the whole column is read day-first. Text columns are trimmed and folded.
// Columns named in specs but absent from t are skipped, and no row is dropped.
func Normalize(t *Table, specs []ColumnSpec, table string) (*Table, []Diagnostic) {
	out := t.Clone()
	var diags []Diagnostic

	for _, spec := range specs {
		if !out.Has(spec.Name) {
			continue
		}
		order := MonthFirst
		if spec.Type == FieldDate {
			order = columnDateOrder(out.Values(spec.Name))
		}
		for i, row := range out.Rows {
			v := row.Get(spec.Name)
			switch spec.Type {
			case FieldDate:
				nv, ok := normalizeDate(v, order)
				if !ok {
					diags = append(diags, DiagnosticFromError(table, &ParseWarning{
						Column: spec.Name,
						Value:  v.String(),
						Row:    i + 1,
					}))
				}
				row[spec.Name] = nv
			case FieldText:
				row[spec.Name] = normalizeText(v, spec.Fold)
			}
		}
	}

	return out, diags
}

// columnDateOrder detects the numeric date order from the text cells of a column.
func columnDateOrder(values []Value) DateOrder {
	texts := make([]string, 0, len(values))
	for _, v := range values {
		if v.Text.Valid && !v.IsDate() {
			texts = append(texts, v.Text.String)
		}
	}
	return DetectDateOrder(texts)
}

// normalizeDate parses v as a date. The bool is false when a non-null value
// could not be parsed; the returned value is null in that case.
func normalizeDate(v Value, order DateOrder) (Value, bool) {
	if v.IsNull() || v.IsDate() {
		return v, true
	}
	d := ParseDate(v.Text.String, order)
	if !d.Valid {
		// Blank text is treated like a missing value, not a parse failure.
		return Null(), strings.TrimSpace(v.Text.String) == ""
	}
	return Value{Date: d}, true
}

// normalizeText trims and folds v. Values that end up blank or equal to a
// null token become null, so an exported file decodes to the same table.
func normalizeText(v Value, fold CaseFold) Value {
	if v.IsNull() {
		return v
	}
	text := ToPgText(v.String())
	if !text.Valid {
		return Null()
	}
	s := text.String
	switch fold {
	case FoldUpper:
		s = strings.ToUpper(s)
	case FoldLower:
		s = strings.ToLower(s)
	}
	if slices.Contains(DefaultNullTokens, s) {
		return Null()
	}
	return TextValue(s)
}
