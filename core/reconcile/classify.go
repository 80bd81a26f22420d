package reconcile

import (
	"strings"

	"report-validator/core/table"
)

// identityMarkers force a column into the identity role when they appear in its name.
var identityMarkers = []string{"_id", "_key"}

// IsIdentityName reports whether a column name marks an identifier column.
func IsIdentityName(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range identityMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Classify partitions the columns shared by two normalized tables.
// A shared column is an identity column when its name carries an identifier
// marker or it is non-numeric in both tables, and a measure when it is numeric
// in both tables. A column numeric in only one table is dropped in dimensional
// mode and kept as a (textually compared) measure in hash mode.
// Columns present in only one table are ignored. Order follows the source table.
func Classify(source, target table.Table, mode KeyMode) Partition {
	p := Partition{
		Shared:   []string{},
		Identity: []string{},
		Measure:  []string{},
		Dropped:  []string{},
		Numeric:  map[string]bool{},
	}

	for _, sc := range source.Columns {
		tc, ok := target.Column(sc.Name)
		if !ok {
			continue
		}
		p.Shared = append(p.Shared, sc.Name)

		srcNumeric, tgtNumeric := sc.Numeric(), tc.Numeric()
		switch {
		case IsIdentityName(sc.Name):
			p.Identity = append(p.Identity, sc.Name)
		case !srcNumeric && !tgtNumeric:
			p.Identity = append(p.Identity, sc.Name)
		case srcNumeric && tgtNumeric:
			p.Measure = append(p.Measure, sc.Name)
			p.Numeric[sc.Name] = true
		case mode == ModeHash:
			p.Measure = append(p.Measure, sc.Name)
			p.Numeric[sc.Name] = false
		default:
			p.Dropped = append(p.Dropped, sc.Name)
		}
	}
	return p
}

// Compared returns identity columns followed by measures.
func (p Partition) Compared() []string {
	cols := make([]string, 0, len(p.Identity)+len(p.Measure))
	cols = append(cols, p.Identity...)
	return append(cols, p.Measure...)
}
