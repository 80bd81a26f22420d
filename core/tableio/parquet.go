package tableio

import (
	"bytes"
	"fmt"
	"io"

	"report-validator/core/report"
	"report-validator/core/table"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
)

// parquetBatch is the number of rows read per ReadRows call.
const parquetBatch = 1000

// ReadParquet reads a flat Parquet file into a table.
// Parquet requires io.ReaderAt, so the input is read into memory.
func ReadParquet(name string, r io.Reader, opts ReadOptions) (table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read parquet data: %w", err)
	}

	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open parquet file: %w", err)
	}

	// Use the last path component as the column name
	paths := file.Schema().Columns()
	columns := make([]string, len(paths))
	for i, path := range paths {
		if len(path) > 0 {
			columns[i] = path[len(path)-1]
		}
	}

	var records []map[string]any
	for _, group := range file.RowGroups() {
		rows, err := readRowGroup(group, columns)
		if err != nil {
			return table.Table{}, err
		}
		records = append(records, rows...)
	}

	t := table.FromRecords(name, columns, records, opts.Types)
	return t, t.Validate()
}

func readRowGroup(group parquet.RowGroup, columns []string) ([]map[string]any, error) {
	reader := group.Rows()
	defer reader.Close()

	var out []map[string]any
	batch := make([]parquet.Row, parquetBatch)
	for {
		n, err := reader.ReadRows(batch)
		for _, row := range batch[:n] {
			record := make(map[string]any, len(columns))
			for _, val := range row {
				col := val.Column()
				if col < 0 || col >= len(columns) {
					continue
				}
				record[columns[col]] = parquetValue(val)
			}
			out = append(out, record)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
		if n == 0 {
			return out, nil
		}
	}
}

func parquetValue(val parquet.Value) any {
	if val.IsNull() {
		return nil
	}
	switch val.Kind() {
	case parquet.Boolean:
		return val.Boolean()
	case parquet.Int32:
		return val.Int32()
	case parquet.Int64:
		return val.Int64()
	case parquet.Float:
		return val.Float()
	case parquet.Double:
		return val.Double()
	default:
		return string(val.ByteArray())
	}
}

// WriteParquet writes one sheet as a Snappy-compressed Parquet file.
// Every column is an optional string; numeric cells keep their exact decimal text.
func WriteParquet(w io.Writer, sheet report.Sheet) error {
	fields := make(parquet.Group, len(sheet.Header))
	for _, h := range sheet.Header {
		fields[h] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema(sheet.Name, fields)

	rows := make([]map[string]any, len(sheet.Rows))
	for r, row := range sheet.Rows {
		record := make(map[string]any, len(sheet.Header))
		for c, h := range sheet.Header {
			if c < len(row) {
				record[h] = parquetCell(row[c])
			}
		}
		rows[r] = record
	}

	writer := parquet.NewGenericWriter[map[string]any](w, schema, parquet.Compression(&parquet.Snappy))
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func parquetCell(cell any) any {
	switch v := cell.(type) {
	case nil:
		return nil
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
