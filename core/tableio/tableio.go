package tableio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"report-validator/core/table"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies a tabular file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
)

// ReadOptions configures how a file is turned into a table.
type ReadOptions struct {
	// Sheet selects the worksheet of an XLSX file. Empty means the first sheet.
	Sheet string

	// Types forces declared column types by header name.
	Types map[string]table.Type

	// Delimiter overrides CSV delimiter detection.
	Delimiter rune
}

// DetectFormat derives the format from a file name, ignoring compression suffixes.
func DetectFormat(name string) (Format, error) {
	base := strings.ToLower(StripCompression(name))
	switch filepath.Ext(base) {
	case ".csv", ".txt", ".tsv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Open reads a table from r, choosing the reader by the extension of name.
// Compressed inputs (.gz, .zst, .lz4) are decompressed transparently.
// The table is named after the file's base name.
func Open(name string, r io.Reader, opts ReadOptions) (table.Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return table.Table{}, err
	}

	rc, err := Decompress(name, r)
	if err != nil {
		return table.Table{}, err
	}
	defer rc.Close()

	label := TableName(name)
	var t table.Table
	switch format {
	case FormatCSV:
		t, err = ReadCSV(label, rc, opts)
	case FormatXLSX:
		t, err = ReadXLSX(label, rc, opts)
	case FormatParquet:
		t, err = ReadParquet(label, rc, opts)
	}
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return t, nil
}

// TableName derives a table label from a file name.
func TableName(name string) string {
	base := filepath.Base(StripCompression(name))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// trimHeader removes a UTF-8 byte order mark and surrounding whitespace from header cells.
func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
