package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	required := []string{"Employee Code", "Location City", "Date of Joining"}

	tests := []struct {
		name        string
		headers     []string
		wantValid   bool
		wantMissing []string
	}{
		{
			name:      "all present in another order",
			headers:   []string{"Date of Joining", "Employee Code", "Extra", "Location City"},
			wantValid: true,
		},
		{
			name:      "headers are trimmed",
			headers:   []string{" Employee Code", "Location City ", "Date of Joining"},
			wantValid: true,
		},
		{
			name:        "missing reported in required order",
			headers:     []string{"Location City"},
			wantValid:   false,
			wantMissing: []string{"Employee Code", "Date of Joining"},
		},
		{
			name:        "case is significant",
			headers:     []string{"employee code", "Location City", "Date of Joining"},
			wantValid:   false,
			wantMissing: []string{"Employee Code"},
		},
		{
			name:        "empty header row",
			headers:     nil,
			wantValid:   false,
			wantMissing: required,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.headers...)
			got := Validate(table, required)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantMissing, got.Missing)
			assert.Len(t, table.Columns, len(tt.headers))
		})
	}
}

func TestValidationResult_Err(t *testing.T) {
	assert.NoError(t, ValidationResult{Valid: true}.Err(TablePrimary))

	err := ValidateHeaders([]string{"Floor"}, []string{"Employee ID", "Floor", "Wing"}).Err(TableSeating)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, TableSeating, schemaErr.Table)
	assert.Equal(t, []string{"Employee ID", "Wing"}, schemaErr.Missing)
	assert.Equal(t, "missing required columns in seating data: Employee ID, Wing", err.Error())
}
