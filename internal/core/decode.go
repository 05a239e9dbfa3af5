package core

// decode.go turns an uploaded byte buffer into a Table.
//
// Processing order:
//  1. Transcode to UTF-8 (BOM-aware, see Encoding)
//  2. Parse with encoding/csv (lazy quotes, variable field counts)
//  3. Trim and de-duplicate header names
//  4. Pad or truncate ragged rows, mapping NA tokens to null
//
// Any failure in steps 1-2 is a DecodeError and halts the table. Layout
// problems in steps 3-4 are reported as warnings and processing continues.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names a supported input text encoding.
type Encoding string

const (
	// EncodingAuto reads UTF-8 when the bytes are valid UTF-8, ISO-8859-1 otherwise.
	EncodingAuto Encoding = "auto"
	// EncodingLatin1 is ISO-8859-1, the Western European single-byte encoding.
	EncodingLatin1 Encoding = "latin1"
	// EncodingWindows1252 is the Windows superset of ISO-8859-1.
	EncodingWindows1252 Encoding = "windows-1252"
	// EncodingUTF8 is strict UTF-8: invalid sequences fail the decode.
	EncodingUTF8 Encoding = "utf-8"
)

var encodingAliases = map[string]Encoding{
	"":             EncodingAuto,
	"auto":         EncodingAuto,
	"latin1":       EncodingLatin1,
	"latin-1":      EncodingLatin1,
	"iso-8859-1":   EncodingLatin1,
	"iso8859-1":    EncodingLatin1,
	"windows-1252": EncodingWindows1252,
	"cp1252":       EncodingWindows1252,
	"utf-8":        EncodingUTF8,
	"utf8":         EncodingUTF8,
}

// ParseEncoding resolves an encoding name or alias, case-insensitively.
func ParseEncoding(name string) (Encoding, error) {
	enc, ok := encodingAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// DefaultNullTokens are cell values read as null, matching the usual dataframe NA set.
var DefaultNullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// DecodeOptions controls DecodeTable.
type DecodeOptions struct {
	Table      string   // Role used in diagnostics: TablePrimary or TableSeating
	Encoding   Encoding // Defaults to EncodingAuto
	NullTokens []string // Defaults to DefaultNullTokens
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeTable parses data into a table. The returned diagnostics are warnings
// about the file layout; a non-nil error is always a *DecodeError.
func DecodeTable(data []byte, opts DecodeOptions) (*Table, []Diagnostic, error) {
	enc := opts.Encoding
	if enc == "" {
		enc = EncodingAuto
	}
	nullTokens := opts.NullTokens
	if nullTokens == nil {
		nullTokens = DefaultNullTokens
	}
	fail := func(err error) (*Table, []Diagnostic, error) {
		return nil, nil, &DecodeError{Table: opts.Table, Encoding: string(enc), Err: err}
	}

	text, err := transcode(data, enc)
	if err != nil {
		return fail(err)
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fail(ErrEmptyFile)
		}
		return fail(fmt.Errorf("invalid csv: %w", err))
	}

	var diags []Diagnostic
	columns, renamed := cleanHeader(header)
	for _, r := range renamed {
		diags = append(diags, warning(opts.Table, fmt.Sprintf("duplicate column %q renamed to %q", r[0], r[1])))
	}

	nulls := make(map[string]struct{}, len(nullTokens))
	for _, tok := range nullTokens {
		nulls[tok] = struct{}{}
	}

	table := NewTable(columns...)
	for rowNum := 1; ; rowNum++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(fmt.Errorf("invalid csv: %w", err))
		}

		if len(rec) != len(columns) {
			action := "padding with empty values"
			if len(rec) > len(columns) {
				action = "truncating extra columns"
			}
			d := warning(opts.Table, fmt.Sprintf("row has %d columns, expected %d; %s", len(rec), len(columns), action))
			d.Row = rowNum
			diags = append(diags, d)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if i >= len(rec) {
				row[col] = Null()
				continue
			}
			if _, isNull := nulls[rec[i]]; isNull {
				row[col] = Null()
				continue
			}
			row[col] = TextValue(rec[i])
		}
		table.Rows = append(table.Rows, row)
	}

	return table, diags, nil
}

// transcode converts data to UTF-8 according to enc. A byte order mark always
// wins over the requested single-byte encoding.
func transcode(data []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingUTF8:
		body := bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(body) {
			return nil, fmt.Errorf("invalid utf-8 sequence at byte %d", firstInvalidUTF8(body))
		}
		return body, nil
	case EncodingAuto:
		body := bytes.TrimPrefix(data, utf8BOM)
		if utf8.Valid(body) {
			return body, nil
		}
		return decodeWith(charmap.ISO8859_1, data)
	case EncodingLatin1:
		return decodeWith(charmap.ISO8859_1, data)
	case EncodingWindows1252:
		return decodeWith(charmap.Windows1252, data)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// decodeWith decodes single-byte data, honouring a UTF-8 or UTF-16 BOM if present.
func decodeWith(e encoding.Encoding, data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(e.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}
	return out, nil
}

func firstInvalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// cleanHeader trims header names and renames repeats to Name.1, Name.2, ...
// It returns the cleaned names and the (original, renamed) pairs.
func cleanHeader(header []string) ([]string, [][2]string) {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	var renamed [][2]string

	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if n, dup := seen[name]; dup {
			candidate := fmt.Sprintf("%s.%d", name, n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			seen[name] = n + 1
			seen[candidate] = 1
			renamed = append(renamed, [2]string{name, candidate})
			name = candidate
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out, renamed
}
