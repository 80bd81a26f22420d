package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"report-validator/core/reconcile"
	"report-validator/core/table"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *reconcile.Result {
	t.Helper()
	source := *table.New("src").
		AddColumn("Region", table.TypeText, table.Text("East"), table.Text("West"), table.Text("West")).
		AddColumn("Sales", table.TypeNumber, table.Int(100), table.Int(10), table.Int(20))
	target := *table.New("tgt").
		AddColumn("Region", table.TypeText, table.Text("EAST"), table.Text("NORTH")).
		AddColumn("Sales", table.TypeNumber, table.Int(105), table.Int(1)).
		AddColumn("Extra", table.TypeText, table.Text("x"), table.Text("y"))

	res, err := reconcile.Reconcile(source, target, reconcile.Options{})
	require.NoError(t, err)
	return res
}

// TestAssemble tests the sheet order and the validation report layout.
func TestAssemble(t *testing.T) {
	wb := Assemble(sampleResult(t), DefaultChecklist(), SideNames{})

	assert.Equal(t, []string{"Checklist", "Cognos", "PBI", "Validation_Report", "Column Checklist", "Diff Checker"}, wb.Names())

	report, ok := wb.Sheet(SheetValidation)
	require.True(t, ok)
	assert.Equal(t, []string{"unique_key", "Region", "presence", "Sales_Cognos", "Sales_PBI", "Sales_Diff"}, report.Header)
	require.Len(t, report.Rows, 3)

	east := report.Rows[0]
	assert.Equal(t, "EAST", east[0])
	assert.Equal(t, "Present in Both", east[2])
	assert.Equal(t, "5", east[5].(decimal.Decimal).String())

	north := report.Rows[1]
	assert.Equal(t, "Present in PBI", north[2])
	assert.Nil(t, north[3])
	assert.Equal(t, "1", north[5].(decimal.Decimal).String())

	west := report.Rows[2]
	assert.Equal(t, "Present in Cognos", west[2])
	assert.Equal(t, "-30", west[5].(decimal.Decimal).String())

	source, ok := wb.Sheet("Cognos")
	require.True(t, ok)
	assert.Equal(t, []string{"unique_key", "Region", "Sales", "row_count"}, source.Header)
	require.Len(t, source.Rows, 2)
	assert.Equal(t, "30", source.Rows[1][2].(decimal.Decimal).String())
	assert.Equal(t, 2, source.Rows[1][3])
}

// TestAssemble_CustomNames tests side names in headers and presence labels.
func TestAssemble_CustomNames(t *testing.T) {
	names := SideNames{Source: "Legacy", Target: "Fabric"}
	wb := Assemble(sampleResult(t), DefaultChecklist(), names)

	assert.Equal(t, "Legacy", wb.Sheets[1].Name)
	assert.Equal(t, "Fabric", wb.Sheets[2].Name)

	report, _ := wb.Sheet(SheetValidation)
	assert.Contains(t, report.Header, "Sales_Legacy")
	assert.Contains(t, report.Header, "Sales_Fabric")
	assert.Equal(t, "Present in Fabric", report.Rows[1][2])

	cols, _ := wb.Sheet(SheetColumnChecklist)
	assert.Equal(t, []string{"Legacy Columns", "Fabric Columns", "Match"}, cols.Header)
	assert.Equal(t, [][]any{
		{"Region", "Region", true},
		{"Sales", "Sales", true},
		{"", "Extra", false},
	}, cols.Rows)
}

func TestSideNames_Validate(t *testing.T) {
	assert.NoError(t, SideNames{}.Validate())
	assert.NoError(t, SideNames{Source: "Legacy", Target: "Fabric"}.Validate())
	assert.NoError(t, SideNames{Source: strings.Repeat("x", MaxSheetName), Target: "PBI"}.Validate())

	invalid := []SideNames{
		{Source: "Checklist", Target: "Checklist"},
		{Source: "PBI", Target: "pbi"},
		{Source: "Cognos", Target: "Column Checklist"},
		{Source: strings.Repeat("x", MaxSheetName+1), Target: "PBI"},
		{Source: "Cognos", Target: "PBI [prod]"},
		{Source: "Cognos", Target: "a:b"},
		{Source: "'Cognos", Target: "PBI"},
	}
	for _, names := range invalid {
		assert.ErrorIs(t, names.Validate(), ErrInvalidSideNames, "%+v", names)
	}
}

// TestDiffCheckerSheet tests totals and the presence verdict row.
func TestDiffCheckerSheet(t *testing.T) {
	sheet := DiffCheckerSheet(reconcile.Summary{
		AllBoth: true,
		Totals: []reconcile.DiffTotal{
			{Column: "Sales", Numeric: true, Sum: decimal.NewFromInt(-25)},
			{Column: "Status", Numeric: false, Mismatches: 2},
		},
	})

	assert.Equal(t, []string{"Diff Column Name", "Sum of Difference"}, sheet.Header)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Sales_Diff", sheet.Rows[0][0])
	assert.Equal(t, "-25", sheet.Rows[0][1].(decimal.Decimal).String())
	assert.Equal(t, []any{"Status_Diff", "2 mismatches"}, sheet.Rows[1])
	assert.Equal(t, []any{"All rows present in both", "Yes"}, sheet.Rows[2])

	sheet = DiffCheckerSheet(reconcile.Summary{})
	assert.Equal(t, []any{"All rows present in both", "No"}, sheet.Rows[0])
}

// TestChecklist tests the built-in checklist and file overrides.
func TestChecklist(t *testing.T) {
	cl := DefaultChecklist()
	require.Len(t, cl.Items, 14)
	assert.Equal(t, []string{"S.No", "Checklist", "Status - Level1", "Status - Level2"}, cl.Columns)
	assert.Equal(t, "Sorting is replicated", cl.Items[13])

	sheet := cl.Sheet()
	assert.Equal(t, SheetChecklist, sheet.Name)
	assert.Equal(t, []any{1, cl.Items[0], "", ""}, sheet.Rows[0])

	path := filepath.Join(t.TempDir(), "checklist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [No, Item]\nitems:\n  - Totals match\n"), 0o644))
	custom, err := LoadChecklist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Totals match"}, custom.Items)

	same, err := LoadChecklist("")
	require.NoError(t, err)
	assert.Equal(t, cl, same)

	_, err = LoadChecklist(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseChecklist([]byte("columns: [No, Item]\nitems: []\n"))
	assert.EqualError(t, err, "checklist has no items")
}

func TestConfig_Names(t *testing.T) {
	assert.Equal(t, DefaultSideNames(), Config{}.Names())
	assert.Equal(t, SideNames{Source: "SSRS", Target: "PBI"}, Config{SourceName: "SSRS"}.Names())
}
