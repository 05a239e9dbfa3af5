package core

// validation.go checks that a table carries a required column set.
//
// Header names are compared after trimming surrounding whitespace, so an
// export header like "Employee ID " satisfies "Employee ID". Case is
// significant: "employee code" does not satisfy "Employee Code".

import (
	"strings"
)

// ValidationResult is the outcome of Validate.
type ValidationResult struct {
	Valid   bool     // True if every required column is present
	Missing []string // Missing columns, in required order (empty if Valid)
}

// Err returns a *SchemaError for an invalid result, or nil.
func (r ValidationResult) Err(table string) error {
	if r.Valid {
		return nil
	}
	return &SchemaError{Table: table, Missing: r.Missing}
}

// Validate reports which required columns t lacks. It never modifies t.
func Validate(t *Table, required []string) ValidationResult {
	return ValidateHeaders(t.Columns, required)
}

// ValidateHeaders is Validate over a bare header row.
func ValidateHeaders(headers []string, required []string) ValidationResult {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = struct{}{}
	}

	result := ValidationResult{Valid: true}
	for _, col := range required {
		if _, ok := present[strings.TrimSpace(col)]; !ok {
			result.Valid = false
			result.Missing = append(result.Missing, col)
		}
	}
	return result
}
