// Package statement turns uploaded bank statements into canonical
// transactions: it reads the file into a table, detects the bank layout
// from the header row and classifies each row as a debit or a credit.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "fintrack/internal/errors"
)

const utf8BOM = "\ufeff"

// Table is a header row plus data rows. Every row has len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
	index   map[string]int
}

// NewTable builds a table, trimming header names and padding short rows.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{
		Headers: make([]string, len(headers)),
		index:   make(map[string]int, len(headers)),
	}
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		t.Headers[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	t.Rows = make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, len(headers))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Has reports whether the header row contains col.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Cell returns the value of col in row i, or "" when the column is absent.
func (t *Table) Cell(i int, col string) string {
	j, ok := t.index[col]
	if !ok {
		return ""
	}
	return t.Rows[i][j]
}

// ReadTable parses a CSV or XLSX upload. The format is chosen from the file
// extension; anything else is rejected before the content is read.
func ReadTable(filename string, r io.Reader) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx":
		return readXLSX(r)
	default:
		return nil, apperrors.ErrUnsupportedFileType
	}
}

func readCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, fmt.Sprintf("unreadable CSV: %v", err))
	}
	return fromRecords(records)
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, fmt.Sprintf("unreadable XLSX: %v", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, "workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, fmt.Sprintf("unreadable XLSX: %v", err))
	}
	return fromRecords(records)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, "file has no header row")
	}
	return NewTable(records[0], records[1:]), nil
}
