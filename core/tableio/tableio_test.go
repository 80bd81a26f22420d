package tableio

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"report-validator/core/report"
	"report-validator/core/table"

	"github.com/klauspost/compress/zip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "sales.csv", want: FormatCSV},
		{name: "sales.CSV.gz", want: FormatCSV},
		{name: "export.tsv.zst", want: FormatCSV},
		{name: "report.xlsx", want: FormatXLSX},
		{name: "facts.parquet", want: FormatParquet},
		{name: "facts.parquet.lz4", want: FormatParquet},
		{name: "notes.docx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "sales", TableName("/tmp/in/sales.csv.gz"))
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ',', SniffDelimiter([]byte("a,b,c\n1;2;3")))
	assert.Equal(t, ';', SniffDelimiter([]byte("Region;Sales;\"a,b,c,d\"\n")))
	assert.Equal(t, '\t', SniffDelimiter([]byte("Region\tSales\n")))
	assert.Equal(t, ',', SniffDelimiter(nil))
}

// TestReadCSV tests header trimming, delimiter detection and type inference.
func TestReadCSV(t *testing.T) {
	input := "\ufeff Region ;Sales;Day\nEast;\"1,000\";2024-01-02\nWest;20;01/15/2024\n"

	tbl, err := ReadCSV("src", strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Sales", "Day"}, tbl.Names())
	assert.Equal(t, 2, tbl.RowCount())

	day, _ := tbl.Column("Day")
	assert.Equal(t, table.TypeDate, day.Type)

	sales, _ := tbl.Column("Sales")
	assert.Equal(t, table.TypeNumber, sales.Type)
	assert.Equal(t, "1000", sales.Values[0].String())

	_, err = ReadCSV("empty", strings.NewReader(""), ReadOptions{})
	assert.ErrorIs(t, err, table.ErrInvalidTable)
}

// TestReadCSV_DecimalComma tests that semicolon extracts with decimal commas stay text.
func TestReadCSV_DecimalComma(t *testing.T) {
	tbl, err := ReadCSV("src", strings.NewReader("Region;Sales\nEast;1,50\nWest;2,25\n"), ReadOptions{})
	require.NoError(t, err)

	sales, _ := tbl.Column("Sales")
	assert.Equal(t, table.TypeText, sales.Type)
	assert.Equal(t, "1,50", sales.Values[0].String())
}

// TestOpen_Compressed tests transparent decompression for every supported codec.
func TestOpen_Compressed(t *testing.T) {
	for _, ext := range []string{".gz", ".zst", ".lz4", ""} {
		t.Run("csv"+ext, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := Compress("sales.csv"+ext, &buf)
			require.NoError(t, err)
			_, err = io.WriteString(w, "Region,Sales\nEast,100\nWest,5.5\n")
			require.NoError(t, err)
			require.NoError(t, w.Close())

			tbl, err := Open("sales.csv"+ext, &buf, ReadOptions{})
			require.NoError(t, err)
			assert.Equal(t, "sales", tbl.Name)
			sales, ok := tbl.Column("Sales")
			require.True(t, ok)
			assert.Equal(t, table.TypeNumber, sales.Type)
			assert.Equal(t, "5.5", sales.Values[1].String())
		})
	}

	_, err := Open("broken.csv.gz", strings.NewReader("not gzip"), ReadOptions{})
	assert.Error(t, err)
}

func sampleWorkbook() *report.Workbook {
	return &report.Workbook{Sheets: []report.Sheet{
		{
			Name:   "Cognos",
			Header: []string{"Region", "Sales"},
			Rows:   [][]any{{"East", decimal.NewFromInt(100)}, {"West", decimal.RequireFromString("2.5")}},
		},
		{
			Name:   "PBI",
			Header: []string{"Region", "Sales"},
			Rows:   [][]any{{"East", 105}, {"North", nil}},
		},
	}}
}

// TestXLSX_RoundTrip tests writing a workbook and reading both sides back.
func TestXLSX_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleWorkbook()))

	source, target, err := ReadWorkbook(bytes.NewReader(buf.Bytes()), "Cognos", "PBI", nil)
	require.NoError(t, err)

	assert.Equal(t, "Cognos", source.Name)
	assert.Equal(t, []string{"Region", "Sales"}, source.Names())
	sales, _ := source.Column("Sales")
	assert.Equal(t, table.TypeNumber, sales.Type)
	assert.Equal(t, "2.5", sales.Values[1].String())

	require.Equal(t, 2, target.RowCount())
	tgtSales, _ := target.Column("Sales")
	assert.True(t, tgtSales.Values[1].IsNull())

	single, err := ReadXLSX("book", bytes.NewReader(buf.Bytes()), ReadOptions{Sheet: "PBI"})
	require.NoError(t, err)
	assert.Equal(t, 2, single.RowCount())

	_, _, err = ReadWorkbook(bytes.NewReader(buf.Bytes()), "Cognos", "Missing", nil)
	assert.ErrorIs(t, err, table.ErrInvalidTable)
}

func TestWriteXLSX_DuplicateSheet(t *testing.T) {
	wb := sampleWorkbook()
	wb.Sheets[1].Name = "cognos"

	var buf bytes.Buffer
	err := WriteXLSX(&buf, wb)
	assert.ErrorContains(t, err, "duplicate sheet name")
}

// TestParquet_RoundTrip tests writing a sheet as Parquet and reading it back.
func TestParquet_RoundTrip(t *testing.T) {
	sheet := sampleWorkbook().Sheets[0]

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, sheet))

	tbl, err := ReadParquet("facts", &buf, ReadOptions{Types: map[string]table.Type{"Sales": table.TypeNumber}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Region", "Sales"}, tbl.Names())
	require.Equal(t, 2, tbl.RowCount())

	region, _ := tbl.Column("Region")
	assert.Equal(t, table.Text("East"), region.Values[0])
	sales, _ := tbl.Column("Sales")
	assert.Equal(t, "100", sales.Values[0].String())
}

// TestWriteZip tests one CSV entry per sheet in order.
func TestWriteZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteZip(&buf, sampleWorkbook()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "01_Cognos.csv", zr.File[0].Name)
	assert.Equal(t, "02_PBI.csv", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Region,Sales\nEast,105\nNorth,\n", string(content))
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, OutputXLSX, f)

	f, err = ParseOutputFormat(" ZIP ")
	require.NoError(t, err)
	assert.Equal(t, OutputZip, f)
	assert.Equal(t, "application/zip", f.ContentType())
	assert.Equal(t, ".zip", f.Extension())

	_, err = ParseOutputFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// TestWriteReport_CSV tests that the CSV output carries the validation sheet only.
func TestWriteReport_CSV(t *testing.T) {
	wb := &report.Workbook{Sheets: []report.Sheet{
		{Name: report.SheetChecklist, Header: []string{"S.No"}},
		{Name: report.SheetValidation, Header: []string{"unique_key", "Sales_Diff"}, Rows: [][]any{{"EAST", decimal.NewFromInt(5)}}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, wb, OutputCSV))
	assert.Equal(t, "unique_key,Sales_Diff\nEAST,5\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteReport(&buf, wb, OutputJSON))
	assert.Contains(t, buf.String(), `"Validation_Report"`)
}
