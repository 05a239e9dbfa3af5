// Package profiles registers the roster profiles with the core registry.
// Import it for its side effects before resolving profiles by name.
package profiles

import (
	"github.com/rajkumarmali01/Employee-Analysis/internal/core"
)

// Profile names.
const (
	Group  = "elcm-group"
	City   = "elcm-city"
	Legacy = "elcm-legacy"
)

func init() {
	registerGroup()
	registerCity()
	registerLegacy()
}

// Seating layouts differ only in the name of the key column.
func seatingColumns(key string) []string {
	return []string{key, "Building Name", "Floor", "Wing", "WS Number", "WS Type"}
}

// cityColumns is the roster layout of the single-department exports.
var cityColumns = []string{
	"Employee Code", "Name of Employee", "Employment Status",
	"Employee Type", "Location Name", "Date of Joining",
	"Date of Separation", "Department 1.0", "Location Code", "Location City",
}

func registerGroup() {
	core.Register(core.Profile{
		Name:        Group,
		Label:       "ELCM (group joining date)",
		Description: "Group Date of Joining, location matched anywhere in Location Name, department names matched by substring.",
		PrimaryColumns: []string{
			"Employee Code", "Name of Employee", "Employment Status",
			"Employee Type", "Location Name", "Group Date of Joining",
			"Date of Separation", "Department 1.0", "Department 1.1",
			"Location Code", "Location City",
		},
		ProjectPrimary:    true,
		IdentifierColumn:  "Employee Code",
		JoinDateColumn:    "Group Date of Joining",
		SeparationColumn:  "Date of Separation",
		LocationColumn:    "Location Name",
		LocationPolicy:    core.LocationContains,
		DepartmentColumn:  "Department 1.0",
		DepartmentPolicy:  core.DepartmentContainsAny,
		LegacyDepartments: core.DefaultLegacyDepartments,
		SeatingColumns:    seatingColumns("Employee ID"),
		SeatingIdentifier: "Employee ID",
		Encoding:          core.EncodingAuto,
	})
}

func registerCity() {
	core.Register(core.Profile{
		Name:              City,
		Label:             "ELCM (location city)",
		Description:       "Date of Joining, Location City must equal the city, department names matched by substring.",
		PrimaryColumns:    cityColumns,
		ProjectPrimary:    true,
		IdentifierColumn:  "Employee Code",
		JoinDateColumn:    "Date of Joining",
		SeparationColumn:  "Date of Separation",
		LocationColumn:    "Location City",
		LocationPolicy:    core.LocationEquals,
		DepartmentColumn:  "Department 1.0",
		DepartmentPolicy:  core.DepartmentContainsAny,
		LegacyDepartments: core.DefaultLegacyDepartments,
		SeatingColumns:    seatingColumns("Employee Code"),
		SeatingIdentifier: "Employee Code",
		Encoding:          core.EncodingAuto,
	})
}

func registerLegacy() {
	core.Register(core.Profile{
		Name:              Legacy,
		Label:             "ELCM (department codes)",
		Description:       "Date of Joining, location matched anywhere in Location Name, departments given as short codes.",
		PrimaryColumns:    cityColumns,
		ProjectPrimary:    true,
		IdentifierColumn:  "Employee Code",
		JoinDateColumn:    "Date of Joining",
		SeparationColumn:  "Date of Separation",
		LocationColumn:    "Location Name",
		LocationPolicy:    core.LocationContains,
		DepartmentColumn:  "Department 1.0",
		DepartmentPolicy:  core.DepartmentExactCode,
		LegacyDepartments: core.DefaultLegacyCodes,
		SeatingColumns:    seatingColumns("Employee ID"),
		SeatingIdentifier: "Employee ID",
		Encoding:          core.EncodingLatin1,
	})
}
