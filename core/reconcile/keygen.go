package reconcile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"report-validator/core/table"

	"github.com/shopspring/decimal"
)

const (
	// nullIdentity is how an empty identity cell renders inside a dimensional key.
	nullIdentity = "NAN"
	// keySeparator joins identity values into a dimensional key.
	keySeparator = "-"
)

// BuildKeyed reduces a normalized table to one entry per match key.
//
// In dimensional mode rows are grouped by their identity tuple and measures are
// summed per group; null and non-numeric measure cells count as zero. In hash
// mode every row keeps its values and is keyed by a digest of its compared
// columns; content-identical rows share a key and raise Count.
func BuildKeyed(side Side, t table.Table, p Partition, mode KeyMode) (*KeyedTable, error) {
	identity, err := columnsOf(side, t, p.Identity)
	if err != nil {
		return nil, err
	}
	measures, err := columnsOf(side, t, p.Measure)
	if err != nil {
		return nil, err
	}

	kt := &KeyedTable{
		Side:     side,
		Mode:     mode,
		Identity: append([]string(nil), p.Identity...),
		Measures: append([]string(nil), p.Measure...),
		Entries:  []KeyedRow{},
		index:    make(map[string]int),
	}

	switch mode {
	case ModeHash:
		buildHashed(kt, t, p, identity, measures)
	case ModeDimensional:
		if len(identity) == 0 {
			return nil, &ConfigurationError{
				Reason: fmt.Sprintf("no identity columns shared by both tables; dimensional mode would fold all %s rows into one group", side),
			}
		}
		buildGrouped(kt, t, identity, measures)
	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown key mode %q", mode)}
	}
	return kt, nil
}

// columnsOf resolves column positions by name.
func columnsOf(side Side, t table.Table, names []string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		pos := t.Index(name)
		if pos < 0 {
			return nil, &SchemaMismatchError{Side: side, Column: name}
		}
		idx[i] = pos
	}
	return idx, nil
}

func buildGrouped(kt *KeyedTable, t table.Table, identity, measures []int) {
	sums := make([][]decimal.Decimal, 0)
	collided := make(map[string]bool)

	for r := 0; r < t.RowCount(); r++ {
		tuple := make([]table.Value, len(identity))
		for i, c := range identity {
			tuple[i] = t.Columns[c].Values[r]
		}
		key := DimensionalKey(tuple)

		i, ok := kt.index[key]
		if !ok {
			i = len(kt.Entries)
			kt.index[key] = i
			kt.Entries = append(kt.Entries, KeyedRow{Key: key, Identity: tuple})
			sums = append(sums, make([]decimal.Decimal, len(measures)))
		} else if !sameTuple(kt.Entries[i].Identity, tuple) && !collided[key] {
			collided[key] = true
			kt.Warnings = append(kt.Warnings, Warning{
				Kind:    WarningKeyCollision,
				Side:    kt.Side,
				Row:     r + 1,
				Value:   key,
				Message: fmt.Sprintf("%s row %d: distinct identity values render to key %q and were merged", kt.Side, r+1, key),
			})
		}

		kt.Entries[i].Count++
		for m, c := range measures {
			sums[i][m] = sums[i][m].Add(t.Columns[c].Values[r].Decimal())
		}
	}

	for i := range kt.Entries {
		vals := make([]table.Value, len(measures))
		for m := range measures {
			vals[m] = table.Number(sums[i][m])
		}
		kt.Entries[i].Measures = vals
	}
}

func buildHashed(kt *KeyedTable, t table.Table, p Partition, identity, measures []int) {
	hashed := hashColumns(t, p)

	for r := 0; r < t.RowCount(); r++ {
		key := rowDigest(t, hashed, r)
		if i, ok := kt.index[key]; ok {
			kt.Entries[i].Count++
			continue
		}

		entry := KeyedRow{
			Key:      key,
			Identity: make([]table.Value, len(identity)),
			Measures: make([]table.Value, len(measures)),
			Count:    1,
		}
		for i, c := range identity {
			entry.Identity[i] = t.Columns[c].Values[r]
		}
		for m, c := range measures {
			entry.Measures[m] = t.Columns[c].Values[r]
		}
		kt.index[key] = len(kt.Entries)
		kt.Entries = append(kt.Entries, entry)
	}
}

// hashColumns returns the positions of the compared columns ordered by name,
// so both tables hash the same fields in the same order whatever their layout.
func hashColumns(t table.Table, p Partition) []int {
	names := p.Compared()
	sort.Strings(names)
	idx := make([]int, 0, len(names))
	for _, name := range names {
		if pos := t.Index(name); pos >= 0 {
			idx = append(idx, pos)
		}
	}
	return idx
}

// rowDigest is the upper-case hex SHA-256 of the row's fields joined by NUL.
func rowDigest(t table.Table, cols []int, r int) string {
	h := sha256.New()
	for i, c := range cols {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(t.Columns[c].Values[r].String()))
	}
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}

// DimensionalKey renders an identity tuple as an upper-case, dash-joined key.
func DimensionalKey(tuple []table.Value) string {
	parts := make([]string, len(tuple))
	for i, v := range tuple {
		if v.IsNull() {
			parts[i] = nullIdentity
			continue
		}
		parts[i] = v.String()
	}
	return strings.ToUpper(strings.Join(parts, keySeparator))
}

func sameTuple(a, b []table.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
