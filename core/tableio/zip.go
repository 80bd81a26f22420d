package tableio

import (
	"fmt"
	"io"
	"strings"

	"report-validator/core/report"

	"github.com/klauspost/compress/zip"
)

// WriteZip writes the workbook as a zip archive holding one CSV file per sheet,
// prefixed with its position so the sheet order survives extraction.
func WriteZip(w io.Writer, wb *report.Workbook) error {
	zw := zip.NewWriter(w)
	for i, sheet := range wb.Sheets {
		name := fmt.Sprintf("%02d_%s.csv", i+1, fileSafe(sheet.Name))
		entry, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if err := WriteCSV(entry, sheet); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zip archive: %w", err)
	}
	return nil
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
