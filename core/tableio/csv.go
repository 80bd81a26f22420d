package tableio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"report-validator/core/report"
	"report-validator/core/table"
	"report-validator/core/utils"
)

// sniffSize bounds how much input is inspected to detect the delimiter.
const sniffSize = 64 * 1024

// delimiters are the candidates tried by SniffDelimiter, in order of preference.
var delimiters = []rune{',', ';', '\t', '|'}

// ReadCSV reads a delimited text table. The first record is the header.
func ReadCSV(name string, r io.Reader, opts ReadOptions) (table.Table, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	delim := opts.Delimiter
	if delim == 0 {
		head, err := br.Peek(sniffSize)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return table.Table{}, fmt.Errorf("failed to read CSV: %w", err)
		}
		delim = SniffDelimiter(head)
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return table.Table{}, fmt.Errorf("%w: %s is empty", table.ErrInvalidTable, name)
	}
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read CSV record: %w", err)
	}

	t := table.Infer(name, trimHeader(header), records, opts.Types)
	return t, t.Validate()
}

// SniffDelimiter picks the candidate delimiter that occurs most often, outside
// quotes, on the first line of head. Comma wins ties and empty input.
func SniffDelimiter(head []byte) rune {
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	counts := make(map[rune]int, len(delimiters))
	quoted := false
	for _, b := range string(head) {
		if b == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[b]++
		}
	}

	best := delimiters[0]
	for _, d := range delimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// WriteCSV writes one sheet as comma separated text.
func WriteCSV(w io.Writer, sheet report.Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sheet.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range sheet.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = utils.ToString(cell)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
