package reconcile

import (
	"errors"
	"testing"

	"report-validator/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionSales(name string, regions []string, sales []int64) table.Table {
	r := make([]table.Value, len(regions))
	s := make([]table.Value, len(sales))
	for i := range regions {
		r[i] = table.Text(regions[i])
		s[i] = table.Int(sales[i])
	}
	return *table.New(name).AddColumn("Region", table.TypeText, r...).AddColumn("Sales", table.TypeNumber, s...)
}

// TestReconcile_Dimensional tests a matched key with a numeric difference.
func TestReconcile_Dimensional(t *testing.T) {
	source := regionSales("src", []string{"East"}, []int64{100})
	target := regionSales("tgt", []string{"EAST "}, []int64{105})

	res, err := Reconcile(source, target, Options{Mode: ModeDimensional})
	require.NoError(t, err)

	assert.Equal(t, []string{"Region"}, res.Partition.Identity)
	assert.Equal(t, []string{"Sales"}, res.Partition.Measure)

	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.Equal(t, "EAST", row.Key)
	assert.Equal(t, PresenceBoth, row.Presence)
	require.Len(t, row.Measures, 1)
	assert.Equal(t, "100", row.Measures[0].Source.String())
	assert.Equal(t, "105", row.Measures[0].Target.String())
	assert.Equal(t, "5", row.Measures[0].Delta.String())

	assert.True(t, res.Summary.AllBoth)
	assert.False(t, res.Summary.Passed)
	assert.Equal(t, "5", res.Summary.Totals[0].Sum.String())
	assert.Equal(t, 1, res.Summary.Totals[0].Mismatches)
}

// TestReconcile_GroupsDuplicates tests that duplicate identity tuples are summed before matching.
func TestReconcile_GroupsDuplicates(t *testing.T) {
	source := regionSales("src", []string{"WEST", "WEST"}, []int64{10, 20})
	target := regionSales("tgt", []string{"west"}, []int64{30})

	res, err := Reconcile(source, target, Options{})
	require.NoError(t, err)
	assert.Equal(t, ModeDimensional, res.Mode)

	entry, ok := res.Source.Lookup("WEST")
	require.True(t, ok)
	assert.Equal(t, "30", entry.Measures[0].String())
	assert.Equal(t, 2, entry.Count)

	require.Len(t, res.Rows, 1)
	assert.Equal(t, 2, res.Rows[0].SourceCount)
	assert.Equal(t, 1, res.Rows[0].TargetCount)
	assert.True(t, res.Rows[0].Measures[0].Delta.IsZero())
	assert.True(t, res.Summary.Passed)
}

// TestReconcile_Hash tests whole-row matching.
func TestReconcile_Hash(t *testing.T) {
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("EAST"), table.Text("WEST")).
		AddColumn("Code", table.TypeText, table.Text("A"), table.Text("B")).
		AddColumn("Sales", table.TypeNumber, table.Int(10), table.Int(20))
	target := *table.New("tgt").
		AddColumn("Region", table.TypeText, table.Text("East"), table.Text("West")).
		AddColumn("Code", table.TypeText, table.Text("A"), table.Text("B")).
		AddColumn("Sales", table.TypeNumber, table.Int(10), table.Int(21))

	res, err := Reconcile(source, target, Options{Mode: ModeHash})
	require.NoError(t, err)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, 1, res.Summary.Both)
	assert.Equal(t, 1, res.Summary.SourceOnly)
	assert.Equal(t, 1, res.Summary.TargetOnly)
	assert.False(t, res.Summary.AllBoth)

	for _, row := range res.Rows {
		switch row.Presence {
		case PresenceBoth:
			assert.Equal(t, "EAST", row.Identity[0].String())
			assert.True(t, row.Measures[0].Delta.IsZero())
		case PresenceSourceOnly:
			assert.Equal(t, "-20", row.Measures[0].Delta.String())
			assert.True(t, row.Measures[0].Target.IsNull())
		case PresenceTargetOnly:
			assert.Equal(t, "21", row.Measures[0].Delta.String())
		}
	}
}

// TestReconcile_CancellingDiffs tests that per-row differences fail the run even when they sum to zero.
func TestReconcile_CancellingDiffs(t *testing.T) {
	source := regionSales("src", []string{"East", "West"}, []int64{100, 100})
	target := regionSales("tgt", []string{"East", "West"}, []int64{105, 95})

	res, err := Reconcile(source, target, Options{})
	require.NoError(t, err)
	require.Len(t, res.Summary.Totals, 1)
	assert.True(t, res.Summary.Totals[0].Sum.IsZero())
	assert.Equal(t, 2, res.Summary.Totals[0].Mismatches)
	assert.True(t, res.Summary.AllBoth)
	assert.False(t, res.Summary.Passed)
}

// TestReconcile_HashTextualDiff tests that columns numeric on one side only are compared as text in hash mode.
func TestReconcile_HashTextualDiff(t *testing.T) {
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Units", table.TypeNumber, table.Int(3))
	target := *table.New("tgt").
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Units", table.TypeText, table.Text("three"))

	res, err := Reconcile(source, target, Options{Mode: ModeHash})
	require.NoError(t, err)
	assert.Equal(t, []string{"Units"}, res.Partition.Measure)
	assert.False(t, res.Partition.Numeric["Units"])

	texts := map[Presence]string{}
	for _, row := range res.Rows {
		require.Len(t, row.Measures, 1)
		assert.False(t, row.Measures[0].Numeric)
		texts[row.Presence] = row.Measures[0].Text
	}
	assert.Equal(t, " vs 3", texts[PresenceSourceOnly])
	assert.Equal(t, "THREE vs ", texts[PresenceTargetOnly])
	assert.Equal(t, 2, res.Summary.Totals[0].Mismatches)
	assert.False(t, res.Summary.Passed)

	// dimensional mode drops the column instead
	res, err = Reconcile(source, target, Options{Mode: ModeDimensional})
	require.NoError(t, err)
	assert.Equal(t, []string{"Units"}, res.Partition.Dropped)
	assert.Empty(t, res.Partition.Measure)
	assert.True(t, res.Summary.Passed)
}

// TestReconcile_Symmetry tests that swapping sides negates diffs and swaps one-sided labels.
func TestReconcile_Symmetry(t *testing.T) {
	a := regionSales("a", []string{"EAST", "WEST", "NORTH", "WEST"}, []int64{100, 5, 7, 6})
	b := regionSales("b", []string{"EAST", "WEST", "SOUTH"}, []int64{90, 11, 4})

	for _, mode := range []KeyMode{ModeDimensional, ModeHash} {
		t.Run(string(mode), func(t *testing.T) {
			forward, err := Reconcile(a, b, Options{Mode: mode})
			require.NoError(t, err)
			backward, err := Reconcile(b, a, Options{Mode: mode})
			require.NoError(t, err)

			require.Len(t, backward.Rows, len(forward.Rows))
			assert.Equal(t, forward.Summary.SourceOnly, backward.Summary.TargetOnly)
			assert.Equal(t, forward.Summary.TargetOnly, backward.Summary.SourceOnly)

			for i, row := range forward.Rows {
				other := backward.Rows[i]
				assert.Equal(t, row.Key, other.Key)
				switch row.Presence {
				case PresenceBoth:
					assert.Equal(t, PresenceBoth, other.Presence)
				case PresenceSourceOnly:
					assert.Equal(t, PresenceTargetOnly, other.Presence)
				case PresenceTargetOnly:
					assert.Equal(t, PresenceSourceOnly, other.Presence)
				}
				for m := range row.Measures {
					assert.True(t, row.Measures[m].Delta.Neg().Equal(other.Measures[m].Delta),
						"key %s: %s vs %s", row.Key, row.Measures[m].Delta, other.Measures[m].Delta)
				}
			}
		})
	}
}

// TestReconcile_PresenceCompleteness tests that every key of either side appears exactly once.
func TestReconcile_PresenceCompleteness(t *testing.T) {
	source := regionSales("src", []string{"A", "B", "C", "C"}, []int64{1, 2, 3, 4})
	target := regionSales("tgt", []string{"B", "C", "D"}, []int64{2, 7, 9})

	res, err := Reconcile(source, target, Options{})
	require.NoError(t, err)

	seen := map[string]Presence{}
	for i, row := range res.Rows {
		_, dup := seen[row.Key]
		assert.False(t, dup)
		seen[row.Key] = row.Presence
		if i > 0 {
			assert.Less(t, res.Rows[i-1].Key, row.Key, "rows are ordered by key")
		}

		_, inSource := res.Source.Lookup(row.Key)
		_, inTarget := res.Target.Lookup(row.Key)
		switch row.Presence {
		case PresenceBoth:
			assert.True(t, inSource && inTarget)
		case PresenceSourceOnly:
			assert.True(t, inSource && !inTarget)
		case PresenceTargetOnly:
			assert.True(t, !inSource && inTarget)
		}
	}
	assert.Equal(t, map[string]Presence{
		"A": PresenceSourceOnly,
		"B": PresenceBoth,
		"C": PresenceBoth,
		"D": PresenceTargetOnly,
	}, seen)
	assert.Equal(t, "8", res.Summary.Totals[0].Sum.String())
}

// TestReconcile_DiffPrecision tests that decimal diffs carry no float drift.
func TestReconcile_DiffPrecision(t *testing.T) {
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Amount", table.TypeNumber, table.Text("0.1"))
	target := *table.New("tgt").
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Amount", table.TypeNumber, table.Float(0.3))

	res, err := Reconcile(source, target, Options{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "0.2", res.Rows[0].Measures[0].Delta.String())
}

// TestReconcile_IdentityFallback tests that null source identity values are filled from the target.
func TestReconcile_IdentityFallback(t *testing.T) {
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Label", table.TypeText, table.Null()).
		AddColumn("Sales", table.TypeNumber, table.Int(1))
	target := *table.New("tgt").
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Label", table.TypeText, table.Text("nan")).
		AddColumn("Sales", table.TypeNumber, table.Int(1))

	res, err := Reconcile(source, target, Options{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "EAST-NAN", res.Rows[0].Key)
	assert.Equal(t, PresenceBoth, res.Rows[0].Presence)
	assert.Equal(t, "NAN", res.Rows[0].Identity[1].String())
}

// TestReconcile_Options tests exclusion, identity renames and column pairing.
func TestReconcile_Options(t *testing.T) {
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("EAST"), table.Text("EAST")).
		AddColumn("Store", table.TypeNumber, table.Int(1), table.Int(2)).
		AddColumn("Refreshed", table.TypeText, table.Text("today"), table.Text("today")).
		AddColumn("Sales", table.TypeNumber, table.Int(5), table.Int(6))
	target := *table.New("tgt").
		AddColumn("Region", table.TypeText, table.Text("EAST"), table.Text("EAST")).
		AddColumn("Store", table.TypeNumber, table.Int(1), table.Int(2)).
		AddColumn("Sales", table.TypeNumber, table.Int(5), table.Int(6)).
		AddColumn("Extra", table.TypeText, table.Text("x"), table.Text("y"))

	res, err := Reconcile(source, target, Options{
		ExcludeColumns:   []string{"Refreshed", "Extra"},
		RenameToIdentity: []string{"Store"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Store_ID"}, res.Partition.Identity)
	assert.Equal(t, []string{"Sales"}, res.Partition.Measure)
	assert.Len(t, res.Rows, 2)
	assert.True(t, res.Summary.Passed)

	require.Len(t, res.Columns, 3)
	for i, pair := range res.Columns {
		assert.Equal(t, i+1, pair.Position)
		assert.True(t, pair.Match)
	}

	// without the rename, Store is summed away
	res, err = Reconcile(source, target, Options{ExcludeColumns: []string{"Refreshed"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region"}, res.Partition.Identity)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, ColumnPair{Position: 4, Source: "", Target: "Extra", Match: false}, res.Columns[3])
}

// TestReconcile_Errors tests the structural failures.
func TestReconcile_Errors(t *testing.T) {
	numbersOnly := *table.New("src").AddColumn("Sales", table.TypeNumber, table.Int(1))

	tests := []struct {
		name    string
		source  table.Table
		target  table.Table
		opts    Options
		wantErr error
	}{
		{
			name:    "NoIdentity",
			source:  numbersOnly,
			target:  numbersOnly,
			wantErr: ErrConfiguration,
		},
		{
			name:    "NoSharedColumns",
			source:  regionSales("src", []string{"A"}, []int64{1}),
			target:  *table.New("tgt").AddColumn("Other", table.TypeText, table.Text("A")),
			wantErr: ErrConfiguration,
		},
		{
			name:    "UnknownMode",
			source:  regionSales("src", []string{"A"}, []int64{1}),
			target:  regionSales("tgt", []string{"A"}, []int64{1}),
			opts:    Options{Mode: "fuzzy"},
			wantErr: ErrConfiguration,
		},
		{
			name:    "RenameCollision",
			source:  *table.New("src").AddColumn("Store", table.TypeText, table.Text("1")).AddColumn("Store_ID", table.TypeText, table.Text("1")),
			target:  regionSales("tgt", []string{"A"}, []int64{1}),
			opts:    Options{RenameToIdentity: []string{"Store"}},
			wantErr: ErrConfiguration,
		},
		{
			name:    "Ragged",
			source:  *table.New("src").AddColumn("Region", table.TypeText, table.Text("A")).AddColumn("Sales", table.TypeNumber),
			target:  regionSales("tgt", []string{"A"}, []int64{1}),
			wantErr: table.ErrInvalidTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Reconcile(tt.source, tt.target, tt.opts)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

// TestReconcile_Warnings tests that coercion failures surface without aborting the run.
func TestReconcile_Warnings(t *testing.T) {
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("EAST"), table.Text("EAST")).
		AddColumn("Sales", table.TypeNumber, table.Int(1), table.Text("n/a"))
	target := regionSales("tgt", []string{"EAST"}, []int64{1})

	res, err := Reconcile(source, target, Options{Mode: ModeHash})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, WarningTypeCoercion, res.Warnings[0].Kind)
	assert.Equal(t, 2, res.Warnings[0].Row)
	assert.Equal(t, []string{"Sales"}, res.Partition.Measure)
	assert.False(t, res.Partition.Numeric["Sales"])
}

func TestPairColumns(t *testing.T) {
	pairs := PairColumns([]string{"A", "B", "C"}, []string{"A", "X"})
	assert.Equal(t, []ColumnPair{
		{Position: 1, Source: "A", Target: "A", Match: true},
		{Position: 2, Source: "B", Target: "X", Match: false},
		{Position: 3, Source: "C", Target: "", Match: false},
	}, pairs)
}
