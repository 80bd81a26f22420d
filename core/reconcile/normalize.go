package reconcile

import (
	"fmt"
	"strings"

	"report-validator/core/table"
	"report-validator/core/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns a normalized copy of t:
//   - column names are trimmed;
//   - text cells are NFC-normalized, trimmed and upper-cased;
//   - date cells (and text cells of date columns) become YYYY-MM-DD text, and
//     date columns become text columns;
//   - text cells of numeric columns are parsed into numbers.
//
// A cell that cannot be coerced to its column's type is reported as a
// WarningTypeCoercion and kept, text-normalized, in place. Number cells are
// never modified. Normalizing twice yields the same table as normalizing once.
func Normalize(side Side, t table.Table) (table.Table, []Warning) {
	upper := cases.Upper(language.Und)
	var warnings []Warning

	out := table.Table{Name: t.Name, Columns: make([]table.Column, len(t.Columns))}
	for c, col := range t.Columns {
		name := strings.TrimSpace(col.Name)
		typ := col.Type
		if typ == table.TypeDate {
			typ = table.TypeText
		}

		values := make([]table.Value, len(col.Values))
		for r, v := range col.Values {
			cell, ok := normalizeCell(v, col.Type, upper)
			if !ok {
				warnings = append(warnings, Warning{
					Kind:    WarningTypeCoercion,
					Side:    side,
					Column:  name,
					Row:     r + 1,
					Value:   v.String(),
					Message: fmt.Sprintf("%s column %q row %d: %q is not a valid %s", side, name, r+1, v.String(), col.Type),
				})
			}
			values[r] = cell
		}
		out.Columns[c] = table.Column{Name: name, Type: typ, Values: values}
	}
	return out, warnings
}

// normalizeCell normalizes a single cell for a column of the declared type.
// ok is false when a coercion was attempted and failed.
func normalizeCell(v table.Value, declared table.Type, upper cases.Caser) (table.Value, bool) {
	switch v.Kind {
	case table.KindNull, table.KindNumber:
		return v, true
	case table.KindDate:
		return table.Text(v.Time.Format(table.DateLayout)), true
	}

	switch declared {
	case table.TypeNumber:
		if d, ok := utils.ParseDecimal(v.Text); ok {
			return table.Number(d), true
		}
		return normalizeText(v.Text, upper), false
	case table.TypeDate:
		if ts, ok := table.ParseDate(v.Text); ok {
			return table.Text(ts.Format(table.DateLayout)), true
		}
		return normalizeText(v.Text, upper), false
	default:
		return normalizeText(v.Text, upper), true
	}
}

func normalizeText(s string, upper cases.Caser) table.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return table.Null()
	}
	return table.Text(norm.NFC.String(upper.String(s)))
}
