package core

import (
	"fmt"
	"slices"
	"strings"
)

// SeatingSuffix is appended to seating columns whose name is already used by the roster.
const SeatingSuffix = "_seating"

// JoinReport summarizes a left join.
type JoinReport struct {
	Matched       int      `json:"matched"`
	Unmatched     int      `json:"unmatched"`
	DuplicateKeys []string `json:"duplicateKeys,omitempty"` // Seating keys seen more than once, in first-seen order
}

// JoinKey normalizes a cell for key comparison: trimmed text, never numeric.
// The bool is false for null or blank keys, which never match.
func JoinKey(v Value) (string, bool) {
	if v.IsNull() {
		return "", false
	}
	k := strings.TrimSpace(v.String())
	return k, k != ""
}

// LeftJoin attaches secondary columns to every primary row by key.
//
// The first secondary row per key wins. The secondary key column is dropped
// from the output, and secondary columns whose name is already taken are
// renamed with SeatingSuffix until unique. Neither input is modified.
func LeftJoin(primary, secondary *Table, primaryKey, secondaryKey string) (*Table, JoinReport) {
	var report JoinReport

	index := make(map[string]int, len(secondary.Rows))
	seenDup := make(map[string]bool)
	for i, row := range secondary.Rows {
		k, ok := JoinKey(row.Get(secondaryKey))
		if !ok {
			continue
		}
		if _, exists := index[k]; exists {
			if !seenDup[k] {
				seenDup[k] = true
				report.DuplicateKeys = append(report.DuplicateKeys, k)
			}
			continue
		}
		index[k] = i
	}

	carried := secondary.Clone()
	carried.DropColumn(secondaryKey)
	for _, col := range slices.Clone(carried.Columns) {
		to := col
		for primary.Has(to) || (to != col && carried.Has(to)) {
			to += SeatingSuffix
		}
		carried.RenameColumn(col, to)
	}

	out := primary.Clone()
	out.Columns = append(out.Columns, carried.Columns...)

	for _, row := range out.Rows {
		match, found := -1, false
		if k, ok := JoinKey(row.Get(primaryKey)); ok {
			match, found = index[k]
		}
		if found {
			report.Matched++
		} else {
			report.Unmatched++
		}
		for _, col := range carried.Columns {
			if found {
				row[col] = carried.Rows[match].Get(col)
			} else {
				row[col] = Null()
			}
		}
	}

	return out, report
}

// duplicateKeyWarning describes duplicate seating keys for the diagnostics list.
func duplicateKeyWarning(keys []string) Diagnostic {
	const show = 5
	list := keys
	more := ""
	if len(list) > show {
		list = list[:show]
		more = fmt.Sprintf(" and %d more", len(keys)-show)
	}
	return warning(TableSeating, fmt.Sprintf(
		"duplicate seating key for %d employee(s): %s%s; first row used",
		len(keys), strings.Join(list, ", "), more))
}
