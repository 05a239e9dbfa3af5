package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTable_Basic(t *testing.T) {
	data := []byte("Employee Code , Name of Employee\nE1,Asha\nE2,\"Patel, Ravi\"\n")

	table, diags, err := DecodeTable(data, DecodeOptions{Table: TablePrimary})
	require.NoError(t, err)
	assert.Empty(t, diags)

	want := [][]string{
		{"Employee Code", "Name of Employee"},
		{"E1", "Asha"},
		{"E2", "Patel, Ravi"},
	}
	if diff := cmp.Diff(want, table.Strings()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTable_Latin1(t *testing.T) {
	// "Zoë" and "Müller" in ISO-8859-1.
	data := []byte("Name\nZo\xeb\nM\xfcller\n")

	for _, enc := range []Encoding{EncodingAuto, EncodingLatin1, EncodingWindows1252} {
		t.Run(string(enc), func(t *testing.T) {
			table, _, err := DecodeTable(data, DecodeOptions{Encoding: enc})
			require.NoError(t, err)
			assert.Equal(t, []string{"Zoë", "Müller"}, []string{
				table.Rows[0].Get("Name").String(),
				table.Rows[1].Get("Name").String(),
			})
		})
	}
}

func TestDecodeTable_StrictUTF8(t *testing.T) {
	_, _, err := DecodeTable([]byte("Name\nZo\xeb\n"), DecodeOptions{Table: TableSeating, Encoding: EncodingUTF8})
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, TableSeating, decodeErr.Table)
	assert.Contains(t, err.Error(), "invalid utf-8 sequence at byte 7")
}

func TestDecodeTable_UTF8PassesThroughAuto(t *testing.T) {
	table, _, err := DecodeTable([]byte("Name\nZoë\n"), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Zoë", table.Rows[0].Get("Name").String())
}

func TestDecodeTable_BOM(t *testing.T) {
	data := append([]byte("\xef\xbb\xbf"), "Employee ID,Floor\n7,3\n"...)

	for _, enc := range []Encoding{EncodingAuto, EncodingUTF8, EncodingLatin1} {
		t.Run(string(enc), func(t *testing.T) {
			table, _, err := DecodeTable(data, DecodeOptions{Encoding: enc})
			require.NoError(t, err)
			assert.Equal(t, []string{"Employee ID", "Floor"}, table.Columns)
		})
	}
}

func TestDecodeTable_NullTokens(t *testing.T) {
	data := []byte("A,B,C,D\nNA,,#N/A,keep\n")

	table, _, err := DecodeTable(data, DecodeOptions{})
	require.NoError(t, err)

	row := table.Rows[0]
	assert.True(t, row.Get("A").IsNull())
	assert.True(t, row.Get("B").IsNull())
	assert.True(t, row.Get("C").IsNull())
	assert.Equal(t, "keep", row.Get("D").String())

	t.Run("custom tokens", func(t *testing.T) {
		table, _, err := DecodeTable(data, DecodeOptions{NullTokens: []string{"keep"}})
		require.NoError(t, err)
		assert.Equal(t, "NA", table.Rows[0].Get("A").String())
		assert.True(t, table.Rows[0].Get("D").IsNull())
	})
}

func TestDecodeTable_RaggedRows(t *testing.T) {
	data := []byte("A,B,C\n1,2\n1,2,3,4\n1,2,3\n")

	table, diags, err := DecodeTable(data, DecodeOptions{Table: TablePrimary})
	require.NoError(t, err)
	require.Len(t, diags, 2)

	assert.Equal(t, 1, diags[0].Row)
	assert.Equal(t, "FILE006", diags[0].Code)
	assert.Contains(t, diags[0].Message, "padding")
	assert.Equal(t, 2, diags[1].Row)
	assert.Contains(t, diags[1].Message, "truncating")

	assert.True(t, table.Rows[0].Get("C").IsNull())
	assert.Equal(t, []string{"A", "B", "C"}, table.Columns)
	assert.Len(t, table.Rows[1], 3)
}

func TestDecodeTable_DuplicateHeaders(t *testing.T) {
	data := []byte("Name,Name,Name.1,Name\na,b,c,d\n")

	table, diags, err := DecodeTable(data, DecodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Name.1", "Name.1.1", "Name.2"}, table.Columns)
	require.Len(t, diags, 3)
	for _, d := range diags {
		assert.Equal(t, SeverityWarning, d.Severity)
	}
	assert.Equal(t, "d", table.Rows[0].Get("Name.2").String())
}

func TestDecodeTable_Empty(t *testing.T) {
	_, _, err := DecodeTable(nil, DecodeOptions{Table: TablePrimary})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, _, err = DecodeTable([]byte{}, DecodeOptions{Table: TablePrimary})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestDecodeTable_HeaderOnly(t *testing.T) {
	table, diags, err := DecodeTable([]byte("A,B\n"), DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, []string{"A", "B"}, table.Columns)
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"", EncodingAuto},
		{"AUTO", EncodingAuto},
		{"ISO-8859-1", EncodingLatin1},
		{" latin1 ", EncodingLatin1},
		{"cp1252", EncodingWindows1252},
		{"UTF8", EncodingUTF8},
	}
	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseEncoding("ebcdic")
	assert.EqualError(t, err, `unsupported encoding "ebcdic"`)
}
