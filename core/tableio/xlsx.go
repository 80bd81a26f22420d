package tableio

import (
	"fmt"
	"io"
	"strings"

	"report-validator/core/report"
	"report-validator/core/table"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads one worksheet of a workbook. The first row is the header.
func ReadXLSX(name string, r io.Reader, opts ReadOptions) (table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return table.Table{}, fmt.Errorf("%w: workbook %s has no sheets", table.ErrInvalidTable, name)
		}
		sheet = sheets[0]
	}
	return readSheet(f, name, sheet, opts.Types)
}

// ReadWorkbook reads the source and target tables from two sheets of one
// workbook. Both tables are named after their sheets.
func ReadWorkbook(r io.Reader, sourceSheet, targetSheet string, types map[string]table.Type) (table.Table, table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return table.Table{}, table.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	source, err := readSheet(f, sourceSheet, sourceSheet, types)
	if err != nil {
		return table.Table{}, table.Table{}, err
	}
	target, err := readSheet(f, targetSheet, targetSheet, types)
	if err != nil {
		return table.Table{}, table.Table{}, err
	}
	return source, target, nil
}

func readSheet(f *excelize.File, name, sheet string, types map[string]table.Type) (table.Table, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return table.Table{}, fmt.Errorf("%w: sheet %q not found (have %v)", table.ErrInvalidTable, sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return table.Table{}, fmt.Errorf("%w: sheet %q is empty", table.ErrInvalidTable, sheet)
	}

	t := table.Infer(name, trimHeader(rows[0]), rows[1:], types)
	return t, t.Validate()
}

// WriteXLSX writes the workbook with one worksheet per sheet, in order, with bold headers.
func WriteXLSX(w io.Writer, wb *report.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	seen := make(map[string]bool, len(wb.Sheets))
	for i, sheet := range wb.Sheets {
		// excelize hands back the existing sheet for a repeated name
		key := strings.ToLower(sheet.Name)
		if seen[key] {
			return fmt.Errorf("duplicate sheet name %q", sheet.Name)
		}
		seen[key] = true
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		header := make([]interface{}, len(sheet.Header))
		for c, h := range sheet.Header {
			header[c] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %q: %w", sheet.Name, err)
		}
		if err := f.SetRowStyle(sheet.Name, 1, 1, bold); err != nil {
			return fmt.Errorf("failed to style header of %q: %w", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cells := make([]interface{}, len(row))
			for c, cell := range row {
				cells[c] = xlsxCell(cell)
			}
			addr, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, addr, &cells); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", r+2, sheet.Name, err)
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// xlsxCell converts decimals to floats so spreadsheets treat them as numbers.
func xlsxCell(cell any) any {
	switch v := cell.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case nil:
		return nil
	default:
		return v
	}
}
