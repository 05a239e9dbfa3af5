package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateRegistry swaps in an empty registry for the duration of the test.
func isolateRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := registry
	registry = make(map[string]Profile)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	})
}

func TestRegistry(t *testing.T) {
	isolateRegistry(t)

	b := cityProfile()
	b.Name = "b"
	a := cityProfile()
	a.Name = "a"
	a.Label = "Profile A"

	Register(b)
	Register(a)

	assert.Equal(t, 2, ProfileCount())
	assert.Equal(t, []string{"a", "b"}, Names())

	got, ok := Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", got.Label, "label defaults to name")

	got, ok = Get("a")
	require.True(t, ok)
	assert.Equal(t, "Profile A", got.Label)

	_, ok = Get("c")
	assert.False(t, ok)

	Clear()
	assert.Equal(t, 0, ProfileCount())
}

func TestRegister_Panics(t *testing.T) {
	isolateRegistry(t)

	Register(cityProfile())
	assert.Panics(t, func() { Register(cityProfile()) }, "duplicate name")

	p := cityProfile()
	p.Name = "no-key"
	p.SeatingIdentifier = ""
	assert.Panics(t, func() { Register(p) }, "missing seating identifier")
}

func TestProfile_Derivation(t *testing.T) {
	p := cityProfile()
	d := p.Derivation()
	assert.Equal(t, DefaultCutoff, d.Cutoff)
	assert.Equal(t, DefaultCity, d.City)
	assert.Equal(t, DefaultLegacyDepartments, d.LegacyDepartment)

	p.DepartmentPolicy = DepartmentExactCode
	assert.Equal(t, DefaultLegacyCodes, p.Derivation().LegacyDepartment)

	p.Cutoff = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p.City = "pune"
	info := p.Info()
	assert.Equal(t, "2025-01-01", info.Cutoff)
	assert.Equal(t, "auto", info.Encoding)
	assert.Equal(t, "exact-code", info.DepartmentPolicy)
}

func TestProfile_NormalizeSpecs(t *testing.T) {
	p := cityProfile()
	assert.Equal(t, []ColumnSpec{
		{Name: "Employee Code", Type: FieldText},
		{Name: "Date of Joining", Type: FieldDate},
		{Name: "Department 1.0", Type: FieldText, Fold: FoldUpper},
	}, p.NormalizeSpecs())

	p.SeparationColumn = "Date of Separation"
	assert.Len(t, p.NormalizeSpecs(), 4)
}
