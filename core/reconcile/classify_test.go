package reconcile

import (
	"testing"

	"report-validator/core/table"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentityName(t *testing.T) {
	assert.True(t, IsIdentityName("Store_ID"))
	assert.True(t, IsIdentityName("customer_key"))
	assert.True(t, IsIdentityName("ORDER_Id_X"))
	assert.False(t, IsIdentityName("Identity"))
	assert.False(t, IsIdentityName("Sales"))
}

// TestClassify tests role assignment for every combination of column types.
func TestClassify(t *testing.T) {
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Store_ID", table.TypeNumber, table.Int(1)).
		AddColumn("Sales", table.TypeNumber, table.Int(10)).
		AddColumn("Units", table.TypeNumber, table.Int(3)).
		AddColumn("Only_Source", table.TypeText, table.Text("X"))
	target := *table.New("tgt").
		AddColumn("Units", table.TypeText, table.Text("THREE")).
		AddColumn("Sales", table.TypeNumber, table.Int(11)).
		AddColumn("Store_ID", table.TypeNumber, table.Int(1)).
		AddColumn("Region", table.TypeText, table.Text("EAST")).
		AddColumn("Only_Target", table.TypeNumber, table.Int(9))

	tests := []struct {
		name     string
		mode     KeyMode
		identity []string
		measure  []string
		dropped  []string
	}{
		{
			name:     "Dimensional",
			mode:     ModeDimensional,
			identity: []string{"Region", "Store_ID"},
			measure:  []string{"Sales"},
			dropped:  []string{"Units"},
		},
		{
			name:     "Hash",
			mode:     ModeHash,
			identity: []string{"Region", "Store_ID"},
			measure:  []string{"Sales", "Units"},
			dropped:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Classify(source, target, tt.mode)
			assert.Equal(t, []string{"Region", "Store_ID", "Sales", "Units"}, p.Shared)
			assert.Equal(t, tt.identity, p.Identity)
			assert.Equal(t, tt.measure, p.Measure)
			assert.Equal(t, tt.dropped, p.Dropped)
			assert.True(t, p.Numeric["Sales"])
			assert.False(t, p.Numeric["Units"])
			assertPartition(t, p)
		})
	}
}

// assertPartition checks that identity, measure and dropped columns split the shared set.
func assertPartition(t *testing.T, p Partition) {
	t.Helper()
	seen := make(map[string]int)
	for _, group := range [][]string{p.Identity, p.Measure, p.Dropped} {
		for _, name := range group {
			seen[name]++
		}
	}
	assert.Len(t, seen, len(p.Shared))
	for _, name := range p.Shared {
		assert.Equal(t, 1, seen[name], "column %s must have exactly one role", name)
	}
}
