package report

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"report-validator/core/reconcile"
	"report-validator/core/table"
)

// Sheet names that do not depend on the side names.
const (
	SheetChecklist       = "Checklist"
	SheetValidation      = "Validation_Report"
	SheetColumnChecklist = "Column Checklist"
	SheetDiffChecker     = "Diff Checker"
)

// Fixed column labels.
const (
	ColumnKey       = "unique_key"
	ColumnPresence  = "presence"
	ColumnRowCount  = "row_count"
	ColumnMatch     = "Match"
	ColumnDiffName  = "Diff Column Name"
	ColumnDiffSum   = "Sum of Difference"
	LabelAllPresent = "All rows present in both"
)

// ErrInvalidSideNames is returned for side names that cannot name their own worksheet.
var ErrInvalidSideNames = errors.New("invalid side names")

// MaxSheetName is the longest worksheet name spreadsheets accept.
const MaxSheetName = 31

// SideNames are the display names of the two compared platforms.
type SideNames struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// DefaultSideNames returns the names used when none are configured.
func DefaultSideNames() SideNames {
	return SideNames{Source: "Cognos", Target: "PBI"}
}

// orDefault fills empty names from the defaults.
func (n SideNames) orDefault() SideNames {
	def := DefaultSideNames()
	if strings.TrimSpace(n.Source) == "" {
		n.Source = def.Source
	}
	if strings.TrimSpace(n.Target) == "" {
		n.Target = def.Target
	}
	return n
}

// Validate checks that both names can become distinct worksheets next to the
// fixed sheets. Sheet names compare case-insensitively.
func (n SideNames) Validate() error {
	n = n.orDefault()
	if strings.EqualFold(n.Source, n.Target) {
		return fmt.Errorf("%w: source and target are both %q", ErrInvalidSideNames, n.Source)
	}
	for _, name := range []string{n.Source, n.Target} {
		if err := validSheetName(name); err != nil {
			return err
		}
	}
	return nil
}

func validSheetName(name string) error {
	for _, fixed := range []string{SheetChecklist, SheetValidation, SheetColumnChecklist, SheetDiffChecker} {
		if strings.EqualFold(name, fixed) {
			return fmt.Errorf("%w: %q is a reserved sheet name", ErrInvalidSideNames, name)
		}
	}
	if utf8.RuneCountInString(name) > MaxSheetName {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidSideNames, name, MaxSheetName)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("%w: %q contains one of : \\ / ? * [ ]", ErrInvalidSideNames, name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("%w: %q starts or ends with an apostrophe", ErrInvalidSideNames, name)
	}
	return nil
}

// PresenceLabel renders a presence tag for the report.
func (n SideNames) PresenceLabel(p reconcile.Presence) string {
	switch p {
	case reconcile.PresenceSourceOnly:
		return "Present in " + n.Source
	case reconcile.PresenceTargetOnly:
		return "Present in " + n.Target
	default:
		return "Present in Both"
	}
}

// Sheet is one tab of a report workbook. Cells hold nil, string, int, bool or
// decimal.Decimal values.
type Sheet struct {
	Name   string   `json:"name"`
	Header []string `json:"header"`
	Rows   [][]any  `json:"rows"`
}

// Workbook is an ordered set of sheets.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// Names returns the sheet names in order.
func (w *Workbook) Names() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Assemble lays a reconciliation result out as the report workbook:
// the audit checklist, both keyed tables, the validation report, the
// column checklist and the diff checker, in that order.
func Assemble(res *reconcile.Result, cl Checklist, names SideNames) *Workbook {
	names = names.orDefault()
	return &Workbook{
		Sheets: []Sheet{
			cl.Sheet(),
			KeyedSheet(names.Source, res.Source),
			KeyedSheet(names.Target, res.Target),
			ValidationSheet(res, names),
			ColumnSheet(res.Columns, names),
			DiffCheckerSheet(res.Summary),
		},
	}
}

// KeyedSheet renders one side's keyed (aggregated) table.
func KeyedSheet(name string, kt *reconcile.KeyedTable) Sheet {
	sheet := Sheet{Name: name, Header: []string{ColumnKey}}
	if kt == nil {
		return sheet
	}
	sheet.Header = append(sheet.Header, kt.Identity...)
	sheet.Header = append(sheet.Header, kt.Measures...)
	sheet.Header = append(sheet.Header, ColumnRowCount)

	sheet.Rows = make([][]any, 0, len(kt.Entries))
	for _, e := range kt.Entries {
		row := make([]any, 0, len(sheet.Header))
		row = append(row, e.Key)
		for _, v := range e.Identity {
			row = append(row, Cell(v))
		}
		for _, v := range e.Measures {
			row = append(row, Cell(v))
		}
		row = append(row, e.Count)
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// ValidationSheet renders the reconciliation rows: key, identity columns,
// presence, then source, target and diff columns per measure.
func ValidationSheet(res *reconcile.Result, names SideNames) Sheet {
	names = names.orDefault()
	p := res.Partition

	header := []string{ColumnKey}
	header = append(header, p.Identity...)
	header = append(header, ColumnPresence)
	for _, m := range p.Measure {
		header = append(header,
			fmt.Sprintf("%s_%s", m, names.Source),
			fmt.Sprintf("%s_%s", m, names.Target),
			m+"_Diff",
		)
	}

	sheet := Sheet{Name: SheetValidation, Header: header, Rows: make([][]any, 0, len(res.Rows))}
	for _, r := range res.Rows {
		row := make([]any, 0, len(header))
		row = append(row, r.Key)
		for _, v := range r.Identity {
			row = append(row, Cell(v))
		}
		row = append(row, names.PresenceLabel(r.Presence))
		for _, d := range r.Measures {
			row = append(row, Cell(d.Source), Cell(d.Target), diffCell(d))
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// ColumnSheet renders the positional column correspondence.
func ColumnSheet(pairs []reconcile.ColumnPair, names SideNames) Sheet {
	names = names.orDefault()
	sheet := Sheet{
		Name:   SheetColumnChecklist,
		Header: []string{names.Source + " Columns", names.Target + " Columns", ColumnMatch},
		Rows:   make([][]any, len(pairs)),
	}
	for i, p := range pairs {
		sheet.Rows[i] = []any{p.Source, p.Target, p.Match}
	}
	return sheet
}

// DiffCheckerSheet renders the per-measure difference totals and the
// all-rows-present verdict. Textual measures report their mismatch count.
func DiffCheckerSheet(s reconcile.Summary) Sheet {
	sheet := Sheet{
		Name:   SheetDiffChecker,
		Header: []string{ColumnDiffName, ColumnDiffSum},
		Rows:   make([][]any, 0, len(s.Totals)+1),
	}
	for _, total := range s.Totals {
		if total.Numeric {
			sheet.Rows = append(sheet.Rows, []any{total.Column + "_Diff", total.Sum})
			continue
		}
		sheet.Rows = append(sheet.Rows, []any{total.Column + "_Diff", fmt.Sprintf("%d mismatches", total.Mismatches)})
	}

	verdict := "No"
	if s.AllBoth {
		verdict = "Yes"
	}
	sheet.Rows = append(sheet.Rows, []any{LabelAllPresent, verdict})
	return sheet
}

// Cell converts a table value into a sheet cell.
func Cell(v table.Value) any {
	switch v.Kind {
	case table.KindNull:
		return nil
	case table.KindNumber:
		return v.Num
	default:
		return v.String()
	}
}

func diffCell(d reconcile.MeasureDiff) any {
	if d.Numeric {
		return d.Delta
	}
	return d.Text
}
