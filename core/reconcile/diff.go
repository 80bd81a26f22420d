package reconcile

import (
	"fmt"

	"report-validator/core/table"

	"github.com/shopspring/decimal"
)

// Diff fills Row.Measures for every measure of the partition, looking values up
// in the keyed tables the rows were aligned from. A side missing the key
// contributes a null value. Numeric measures get Delta = target - source with
// nulls counted as zero; other measures get the "<target> vs <source>" text.
func Diff(rows []Row, src, tgt *KeyedTable, p Partition) error {
	srcPos, err := measurePositions(src, SideSource, p.Measure)
	if err != nil {
		return err
	}
	tgtPos, err := measurePositions(tgt, SideTarget, p.Measure)
	if err != nil {
		return err
	}

	for i := range rows {
		row := &rows[i]
		s, _ := src.Lookup(row.Key)
		t, _ := tgt.Lookup(row.Key)

		row.Measures = make([]MeasureDiff, len(p.Measure))
		for m, name := range p.Measure {
			d := MeasureDiff{
				Column:  name,
				Source:  measureValue(s, srcPos[m]),
				Target:  measureValue(t, tgtPos[m]),
				Numeric: p.Numeric[name],
			}
			if d.Numeric {
				d.Delta = d.Target.Decimal().Sub(d.Source.Decimal())
			} else {
				d.Text = fmt.Sprintf("%s vs %s", d.Target.String(), d.Source.String())
			}
			row.Measures[m] = d
		}
	}
	return nil
}

func measurePositions(kt *KeyedTable, side Side, names []string) ([]int, error) {
	pos := make([]int, len(names))
	for i, name := range names {
		pos[i] = -1
		if kt != nil {
			for j, have := range kt.Measures {
				if have == name {
					pos[i] = j
					break
				}
			}
		}
		if pos[i] < 0 {
			return nil, &SchemaMismatchError{Side: side, Column: name}
		}
	}
	return pos, nil
}

func measureValue(e *KeyedRow, pos int) table.Value {
	if e == nil || pos >= len(e.Measures) {
		return table.Null()
	}
	return e.Measures[pos]
}

// Summarize aggregates the per-row differences into the verdict signal: the
// presence counts, per-measure difference sums and mismatch counts, and whether
// the run passed.
func Summarize(rows []Row, p Partition) Summary {
	s := Summary{
		TotalKeys: len(rows),
		Totals:    make([]DiffTotal, len(p.Measure)),
	}
	for m, name := range p.Measure {
		s.Totals[m] = DiffTotal{Column: name, Numeric: p.Numeric[name], Sum: decimal.Zero}
	}

	for _, row := range rows {
		switch row.Presence {
		case PresenceBoth:
			s.Both++
		case PresenceSourceOnly:
			s.SourceOnly++
		case PresenceTargetOnly:
			s.TargetOnly++
		}
		for m, d := range row.Measures {
			if m >= len(s.Totals) {
				break
			}
			if d.Numeric {
				s.Totals[m].Sum = s.Totals[m].Sum.Add(d.Delta)
			}
			if d.Mismatch() {
				s.Totals[m].Mismatches++
			}
		}
	}

	s.AllBoth = s.SourceOnly == 0 && s.TargetOnly == 0
	s.Passed = s.AllBoth
	// Any differing row fails the run, even when the numeric deltas cancel out in Sum
	for _, total := range s.Totals {
		if total.Mismatches > 0 {
			s.Passed = false
		}
	}
	return s
}
