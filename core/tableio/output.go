package tableio

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"report-validator/core/report"
)

// OutputFormat selects how a report workbook is written.
type OutputFormat string

const (
	OutputJSON    OutputFormat = "json"
	OutputXLSX    OutputFormat = "xlsx"
	OutputZip     OutputFormat = "zip"
	OutputCSV     OutputFormat = "csv"
	OutputParquet OutputFormat = "parquet"
)

// ParseOutputFormat parses a format name. An empty name selects XLSX.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputXLSX, nil
	case OutputJSON, OutputXLSX, OutputZip, OutputCSV, OutputParquet:
		return f, nil
	default:
		return "", fmt.Errorf("%w: output %q (expected json, xlsx, zip, csv or parquet)", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension for the format.
func (f OutputFormat) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type for the format.
func (f OutputFormat) ContentType() string {
	switch f {
	case OutputJSON:
		return "application/json"
	case OutputZip:
		return "application/zip"
	case OutputCSV:
		return "text/csv"
	case OutputParquet:
		return "application/vnd.apache.parquet"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// WriteReport writes the workbook in the given format. CSV and Parquet hold
// only the validation report sheet.
func WriteReport(w io.Writer, wb *report.Workbook, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wb)
	case OutputZip:
		return WriteZip(w, wb)
	case OutputCSV, OutputParquet:
		sheet, ok := wb.Sheet(report.SheetValidation)
		if !ok {
			return fmt.Errorf("workbook has no %s sheet", report.SheetValidation)
		}
		if format == OutputCSV {
			return WriteCSV(w, sheet)
		}
		return WriteParquet(w, sheet)
	default:
		return WriteXLSX(w, wb)
	}
}
