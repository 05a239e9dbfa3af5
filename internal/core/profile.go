package core

import (
	"time"
)

// Profile bundles every rule that differs between roster variants: which
// columns are required, which columns drive each derivation, and how they
// are matched. Profiles are registered by name and chosen by the caller.
type Profile struct {
	Name        string
	Label       string
	Description string

	// Primary roster. PrimaryColumns are required and reported in order;
	// with ProjectPrimary set the output keeps only those columns.
	PrimaryColumns    []string
	ProjectPrimary    bool
	IdentifierColumn  string
	JoinDateColumn    string
	SeparationColumn  string
	LocationColumn    string
	LocationPolicy    LocationPolicy
	City              string
	DepartmentColumn  string
	DepartmentPolicy  DepartmentPolicy
	LegacyDepartments []string
	Cutoff            time.Time

	// Seating file. SeatingColumns are required and kept in output order,
	// key included.
	SeatingColumns    []string
	SeatingIdentifier string

	Encoding Encoding // Input encoding for both files
}

// NormalizeSpecs returns the column specs applied to the roster before derivation.
func (p Profile) NormalizeSpecs() []ColumnSpec {
	specs := []ColumnSpec{
		{Name: p.IdentifierColumn, Type: FieldText},
		{Name: p.JoinDateColumn, Type: FieldDate},
	}
	if p.SeparationColumn != "" {
		specs = append(specs, ColumnSpec{Name: p.SeparationColumn, Type: FieldDate})
	}
	specs = append(specs, ColumnSpec{Name: p.DepartmentColumn, Type: FieldText, Fold: FoldUpper})
	return specs
}

// Derivation returns the derivation rules of the profile with defaults applied.
func (p Profile) Derivation() Derivation {
	d := Derivation{
		JoinDateColumn:   p.JoinDateColumn,
		Cutoff:           p.Cutoff,
		LocationColumn:   p.LocationColumn,
		LocationPolicy:   p.LocationPolicy,
		City:             p.City,
		DepartmentColumn: p.DepartmentColumn,
		DepartmentPolicy: p.DepartmentPolicy,
		LegacyDepartment: p.LegacyDepartments,
	}
	if d.Cutoff.IsZero() {
		d.Cutoff = DefaultCutoff
	}
	if d.City == "" {
		d.City = DefaultCity
	}
	if d.LegacyDepartment == nil {
		switch d.DepartmentPolicy {
		case DepartmentExactCode:
			d.LegacyDepartment = DefaultLegacyCodes
		default:
			d.LegacyDepartment = DefaultLegacyDepartments
		}
	}
	return d
}

// ProfileInfo is the public summary of a profile.
type ProfileInfo struct {
	Name              string   `json:"name"`
	Label             string   `json:"label"`
	Description       string   `json:"description,omitempty"`
	PrimaryColumns    []string `json:"primaryColumns"`
	SeatingColumns    []string `json:"seatingColumns"`
	JoinDateColumn    string   `json:"joinDateColumn"`
	LocationColumn    string   `json:"locationColumn"`
	LocationPolicy    string   `json:"locationPolicy"`
	DepartmentColumn  string   `json:"departmentColumn"`
	DepartmentPolicy  string   `json:"departmentPolicy"`
	LegacyDepartments []string `json:"legacyDepartments"`
	Cutoff            string   `json:"cutoff"`
	Encoding          string   `json:"encoding"`
}

// Info summarizes p for listings.
func (p Profile) Info() ProfileInfo {
	d := p.Derivation()
	enc := p.Encoding
	if enc == "" {
		enc = EncodingAuto
	}
	return ProfileInfo{
		Name:              p.Name,
		Label:             p.Label,
		Description:       p.Description,
		PrimaryColumns:    p.PrimaryColumns,
		SeatingColumns:    p.SeatingColumns,
		JoinDateColumn:    p.JoinDateColumn,
		LocationColumn:    p.LocationColumn,
		LocationPolicy:    p.LocationPolicy.String(),
		DepartmentColumn:  p.DepartmentColumn,
		DepartmentPolicy:  p.DepartmentPolicy.String(),
		LegacyDepartments: d.LegacyDepartment,
		Cutoff:            d.Cutoff.Format(DateLayout),
		Encoding:          string(enc),
	}
}
