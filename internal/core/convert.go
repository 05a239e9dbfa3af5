package core

// convert.go provides type conversion for raw CSV cells.
//
// These functions handle the messy reality of HR exports:
//   - Multiple date formats (ISO, numeric month-first or day-first, dotted, 15-Jan-2024)
//   - Excel formula prefixes (="value")
//   - Surrounding whitespace
//
// ParseDate and ToPgText return pgtype values with Valid=false for empty or
// unparseable input, which the pipeline stores as null.

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOrder says how an all-numeric date such as 01/11/2024 is read.
type DateOrder int

const (
	MonthFirst DateOrder = iota // 01/11/2024 is 11 January
	DayFirst                    // 01/11/2024 is 1 November
)

func (o DateOrder) String() string {
	if o == DayFirst {
		return "day-first"
	}
	return "month-first"
}

// Date layouts. Two-digit years follow time.Parse: 69-99 map to 19xx and
// 00-68 to 20xx, independent of the current date. Four-digit layouts come
// before two-digit ones in every list.
var (
	unambiguousLayouts = []string{
		"2006-01-02", "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02", "2006.01.02",
		"02-Jan-2006", "2-Jan-2006", "02 Jan 2006", "2 Jan 2006", "2 January 2006",
		"Jan 2, 2006", "January 2, 2006",
		"20060102",
		"02-Jan-06", "2-Jan-06",
	}
	monthFirstLayouts = []string{
		"1/2/2006", "01/02/2006", "1/2/2006 15:04", "1/2/2006 15:04:05",
		"1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	dayFirstLayouts = []string{
		"2/1/2006", "02/01/2006", "2/1/2006 15:04", "2/1/2006 15:04:05",
		"2-1-2006", "02-01-2006", "2.1.2006", "02.01.2006",
		"2/1/06", "02/01/06", "2-1-06", "2.1.06", "02.01.06",
	}
)

func numericLayouts(order DateOrder) (preferred, fallback []string) {
	if order == DayFirst {
		return dayFirstLayouts, monthFirstLayouts
	}
	return monthFirstLayouts, dayFirstLayouts
}

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate converts a string to pgtype.Date, reading numeric dates month-first.
func ToPgDate(s string) pgtype.Date {
	return ParseDate(s, MonthFirst)
}

// ParseDate converts a string to pgtype.Date. Unambiguous layouts are tried
// first, then numeric layouts in the given order. A numeric date that is
// impossible in that order (15/10/2024 month-first) is read the other way.
func ParseDate(s string, order DateOrder) pgtype.Date {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	preferred, fallback := numericLayouts(order)
	for _, layouts := range [][]string{unambiguousLayouts, preferred, fallback} {
		if t, ok := parseWith(s, layouts); ok {
			return pgtype.Date{Time: t.UTC(), Valid: true}
		}
	}
	return pgtype.Date{Valid: false}
}

// DetectDateOrder picks the order for a whole column: day-first as soon as
// one value can only be read day-first, month-first otherwise.
func DetectDateOrder(values []string) DateOrder {
	for _, v := range values {
		v = CleanCell(v)
		if v == "" {
			continue
		}
		if _, ok := parseWith(v, monthFirstLayouts); ok {
			continue
		}
		if _, ok := parseWith(v, dayFirstLayouts); ok {
			return DayFirst
		}
	}
	return MonthFirst
}

func parseWith(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}

	return strings.TrimSpace(s)
}
