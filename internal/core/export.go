package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Output file names. The seating name is used only when the join ran.
const (
	FileProcessed   = "processed_employee_data.csv"
	FileWithSeating = "employee_data_with_seating.csv"

	// XLSXSheet is the single sheet written by EncodeXLSX.
	XLSXSheet = "Employees"
)

// EncodeCSV serializes t as UTF-8 CSV: header in column order, one line per
// row, standard quoting, nulls as empty fields.
func EncodeCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(t.Strings()); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeXLSX serializes t as a workbook with one sheet. Every cell is written
// as a string so identifiers keep their leading zeros.
func EncodeXLSX(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", XLSXSheet); err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}

	for i, rec := range t.Strings() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("encode xlsx: %w", err)
		}
		row := make([]interface{}, len(rec))
		for j, s := range rec {
			row[j] = s
		}
		if err := f.SetSheetRow(XLSXSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("encode xlsx row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSXName returns the workbook file name matching a CSV file name.
func XLSXName(csvName string) string {
	return strings.TrimSuffix(csvName, ".csv") + ".xlsx"
}
