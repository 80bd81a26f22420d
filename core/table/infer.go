package table

import (
	"strings"
	"time"

	"report-validator/core/utils"
)

// dateLayouts are tried in order; month-first wins over day-first for ambiguous input.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02/01/2006",
	"1/2/2006",
	"01-02-06",
	"02-Jan-2006",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate attempts the known date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InferType derives a column type from its cells. Columns with no
// non-null cell are numeric, matching how spreadsheet readers type empty columns.
func InferType(values []Value) Type {
	var numbers, dates, others int
	for _, v := range values {
		switch v.Kind {
		case KindNull:
		case KindNumber:
			numbers++
		case KindDate:
			dates++
		default:
			others++
		}
	}
	switch {
	case others > 0:
		return TypeText
	case numbers > 0 && dates > 0:
		return TypeText
	case dates > 0:
		return TypeDate
	default:
		return TypeNumber
	}
}

// Infer builds a table from string records such as CSV or spreadsheet rows.
// A column is numeric when every non-empty cell parses as a number and a date
// column when every non-empty cell parses as a date; otherwise it is text.
// hints force a declared type for a column; cells that do not fit stay text
// so the normalizer can report them. Short records are padded with nulls and
// cells beyond the header are ignored.
func Infer(name string, header []string, records [][]string, hints map[string]Type) Table {
	t := Table{Name: name, Columns: make([]Column, len(header))}
	for c, h := range header {
		raw := make([]string, len(records))
		for r, rec := range records {
			if c < len(rec) {
				raw[r] = rec[c]
			}
		}

		typ, hinted := hints[h]
		if !hinted {
			typ = inferRaw(raw)
		}

		values := make([]Value, len(raw))
		for r, s := range raw {
			if strings.TrimSpace(s) == "" {
				values[r] = Null()
				continue
			}
			values[r] = Convert(s, typ)
		}
		t.Columns[c] = Column{Name: h, Type: typ, Values: values}
	}
	return t
}

func inferRaw(raw []string) Type {
	numeric, date, seen := true, true, false
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		seen = true
		if numeric {
			if _, ok := utils.ParseDecimal(s); !ok {
				numeric = false
			}
		}
		if date {
			if _, ok := ParseDate(s); !ok {
				date = false
			}
		}
		if !numeric && !date {
			return TypeText
		}
	}
	switch {
	case !seen || numeric:
		return TypeNumber
	case date:
		return TypeDate
	default:
		return TypeText
	}
}

// FromRecords builds a table from typed rows keyed by column name, as produced by
// database and columnar readers. types may declare a column type; otherwise it is
// inferred from the converted cells.
func FromRecords(name string, columns []string, rows []map[string]any, types map[string]Type) Table {
	t := Table{Name: name, Columns: make([]Column, len(columns))}
	for c, col := range columns {
		typ, declared := types[col]
		values := make([]Value, len(rows))
		for r, row := range rows {
			if declared {
				values[r] = Convert(row[col], typ)
			} else {
				values[r] = FromAny(row[col])
			}
		}
		if !declared {
			typ = InferType(values)
		}
		t.Columns[c] = Column{Name: col, Type: typ, Values: values}
	}
	return t
}
