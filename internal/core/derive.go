package core

import (
	"strings"
	"time"
)

// Derived column names and labels. The spellings match the downstream
// reports that consume the export, typos included.
const (
	ColumnJoinRecency = "New join / movment"
	ColumnLocation    = "Ahmedabad / Out side Ahmedabad"
	ColumnDepartment  = "Old GCC / New GCC"

	LabelNewJoin  = "New Join"
	LabelMovement = "Movement"

	LabelInCity  = "Ahmedabad"
	LabelOutCity = "Out side Ahmedabad"

	LabelOldGCC = "Old GCC"
	LabelNewGCC = "New GCC"
)

// DefaultCutoff separates new joiners from movements. Dates strictly after it are new joins.
var DefaultCutoff = time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)

// DefaultCity is matched by the location policies.
const DefaultCity = "ahmedabad"

// DefaultLegacyDepartments are the department substrings that mark the old GCC.
var DefaultLegacyDepartments = []string{"ABEX - GCC", "GROUP DATA GOVERNANCE AND CONTROL - GCC"}

// DefaultLegacyCodes are the short department codes used by exact-code matching.
var DefaultLegacyCodes = []string{"ABEX", "GDGC"}

// LocationPolicy selects how the location bucket is matched.
type LocationPolicy int

const (
	// LocationContains matches when the lower-cased value contains the city.
	LocationContains LocationPolicy = iota
	// LocationEquals matches when the trimmed, lower-cased value is the city.
	LocationEquals
)

func (p LocationPolicy) String() string {
	switch p {
	case LocationContains:
		return "contains"
	case LocationEquals:
		return "equals"
	default:
		return "unknown"
	}
}

// DepartmentPolicy selects how the legacy department bucket is matched.
type DepartmentPolicy int

const (
	// DepartmentContainsAny matches when the upper-cased value contains any legacy name.
	DepartmentContainsAny DepartmentPolicy = iota
	// DepartmentExactCode matches when the upper-cased value equals a legacy code.
	DepartmentExactCode
)

func (p DepartmentPolicy) String() string {
	switch p {
	case DepartmentContainsAny:
		return "contains-any"
	case DepartmentExactCode:
		return "exact-code"
	default:
		return "unknown"
	}
}

// Derivation configures the three derived columns.
type Derivation struct {
	JoinDateColumn   string
	Cutoff           time.Time
	LocationColumn   string
	LocationPolicy   LocationPolicy
	City             string
	DepartmentColumn string
	DepartmentPolicy DepartmentPolicy
	LegacyDepartment []string // Substrings or codes, depending on DepartmentPolicy
}

// Derive appends the join-recency, location and department columns to t.
// Each rule degrades to its default label on null or unexpected values.
func Derive(t *Table, d Derivation) {
	t.AddColumn(ColumnJoinRecency, func(r Row) Value {
		return TextValue(ClassifyJoin(r.Get(d.JoinDateColumn), d.Cutoff))
	})
	t.AddColumn(ColumnLocation, func(r Row) Value {
		return TextValue(ClassifyLocation(r.Get(d.LocationColumn), d.LocationPolicy, d.City))
	})
	t.AddColumn(ColumnDepartment, func(r Row) Value {
		return TextValue(ClassifyDepartment(r.Get(d.DepartmentColumn), d.DepartmentPolicy, d.LegacyDepartment))
	})
}

// ClassifyJoin returns LabelNewJoin if v is a date strictly after cutoff.
func ClassifyJoin(v Value, cutoff time.Time) string {
	if v.IsDate() && v.Date.Time.After(cutoff) {
		return LabelNewJoin
	}
	return LabelMovement
}

// ClassifyLocation returns LabelInCity if v matches city under policy.
func ClassifyLocation(v Value, policy LocationPolicy, city string) string {
	if v.IsNull() {
		return LabelOutCity
	}
	s := strings.ToLower(strings.TrimSpace(v.String()))
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return LabelOutCity
	}

	var match bool
	switch policy {
	case LocationContains:
		match = strings.Contains(s, city)
	case LocationEquals:
		match = s == city
	}
	if match {
		return LabelInCity
	}
	return LabelOutCity
}

// ClassifyDepartment returns LabelOldGCC if v matches one of legacy under policy.
func ClassifyDepartment(v Value, policy DepartmentPolicy, legacy []string) string {
	if v.IsNull() {
		return LabelNewGCC
	}
	s := strings.ToUpper(strings.TrimSpace(v.String()))

	for _, l := range legacy {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		switch policy {
		case DepartmentContainsAny:
			if strings.Contains(s, l) {
				return LabelOldGCC
			}
		case DepartmentExactCode:
			if s == l {
				return LabelOldGCC
			}
		}
	}
	return LabelNewGCC
}
