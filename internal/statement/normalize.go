package statement

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
)

// Direction says which way money moved on a statement row.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Canonical is one bank-agnostic transaction extracted from a statement.
type Canonical struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   Direction
}

// Result is the outcome of parsing one statement.
type Result struct {
	Bank string
	Rows []Canonical
}

// Debits returns the number of debit rows.
func (r *Result) Debits() int {
	n := 0
	for _, row := range r.Rows {
		if row.Direction == Debit {
			n++
		}
	}
	return n
}

// Parse reads, detects and normalizes a statement in one step.
func Parse(filename string, r io.Reader, reg *Registry) (*Result, error) {
	table, err := ReadTable(filename, r)
	if err != nil {
		return nil, err
	}
	schema, err := reg.Detect(table)
	if err != nil {
		return nil, err
	}
	rows, err := Normalize(table, schema)
	if err != nil {
		return nil, err
	}
	return &Result{Bank: schema.Name, Rows: rows}, nil
}

type columns struct {
	date, description, debit, credit string
}

func resolve(t *Table, s Schema) (columns, error) {
	var c columns
	var ok bool
	if c.date, ok = firstPresent(t, s.Date); !ok {
		return c, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, s.Name+" statement has no date column")
	}
	if c.description, ok = firstPresent(t, s.Description); !ok {
		return c, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, s.Name+" statement has no description column")
	}
	if c.debit, ok = firstPresent(t, s.Debit); !ok {
		return c, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, s.Name+" statement has no debit column")
	}
	if c.credit, ok = firstPresent(t, s.Credit); !ok {
		return c, apperrors.WithMessage(apperrors.ErrUnsupportedFormat, s.Name+" statement has no credit column")
	}
	return c, nil
}

func firstPresent(t *Table, variants []string) (string, bool) {
	for _, v := range variants {
		if t.Has(v) {
			return v, true
		}
	}
	return "", false
}

// Normalize classifies every row of t using schema s. A debit amount yields
// a Debit record and a credit amount a Credit record; a row carrying both
// yields both, and a row carrying neither is dropped. Any unparseable date
// or amount fails the whole statement.
func Normalize(t *Table, s Schema) ([]Canonical, error) {
	cols, err := resolve(t, s)
	if err != nil {
		return nil, err
	}
	layout := s.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}

	out := make([]Canonical, 0, len(t.Rows))
	for i := range t.Rows {
		if blank(t.Rows[i]) {
			continue
		}
		rowNum := i + 1

		rawDate := strings.TrimSpace(t.Cell(i, cols.date))
		date, err := time.Parse(layout, rawDate)
		if err != nil {
			return nil, rowError(rowNum, fmt.Sprintf("invalid date %q", rawDate))
		}
		desc := strings.TrimSpace(t.Cell(i, cols.description))

		debit, err := parseAmount(t.Cell(i, cols.debit))
		if err != nil {
			return nil, rowError(rowNum, fmt.Sprintf("invalid debit amount: %v", err))
		}
		credit, err := parseAmount(t.Cell(i, cols.credit))
		if err != nil {
			return nil, rowError(rowNum, fmt.Sprintf("invalid credit amount: %v", err))
		}

		if debit != nil {
			out = append(out, Canonical{Date: date, Description: desc, Amount: *debit, Direction: Debit})
		}
		if credit != nil {
			out = append(out, Canonical{Date: date, Description: desc, Amount: *credit, Direction: Credit})
		}
	}
	return out, nil
}

// parseAmount returns nil for cells that carry no amount: empty, NaN, a
// dash placeholder or zero.
func parseAmount(raw string) (*decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", raw)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%q is negative", raw)
	}
	if d.IsZero() {
		return nil, nil
	}
	return &d, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func rowError(row int, detail string) error {
	return apperrors.WithMessage(apperrors.ErrUnparseableRow, fmt.Sprintf("row %d: %s", row, detail))
}
