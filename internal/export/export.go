// Package export writes a user's active transactions as XLSX or PDF reports.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fintrack/internal/aggregate"
	"fintrack/internal/models"
)

// Content types for the report formats.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

const sheetName = "Transactions"

var headers = []string{"Type", "Label", "Amount", "Description", "Date"}

// Row is one line of a report.
type Row struct {
	Kind        models.Kind
	Label       string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// Report is the input to both writers.
type Report struct {
	Rows        []Row
	Summary     aggregate.Summary
	GeneratedAt time.Time
}

// NewReport merges expenses and incomes into one report, newest first.
// Deleted entries are skipped.
func NewReport[E, I models.Entry](expenses []E, incomes []I, now time.Time) Report {
	rows := make([]Row, 0, len(expenses)+len(incomes))
	rows = appendRows(rows, expenses)
	rows = appendRows(rows, incomes)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return Report{
		Rows:        rows,
		Summary:     aggregate.Summarize(expenses, incomes),
		GeneratedAt: now,
	}
}

func appendRows[T models.Entry](rows []Row, entries []T) []Row {
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		rows = append(rows, Row{
			Kind:        e.Kind(),
			Label:       e.Label(),
			Amount:      e.GetAmount(),
			Description: e.GetDescription(),
			Date:        e.GetDate(),
		})
	}
	return rows
}

// Filename returns the attachment name for a report generated at t.
func Filename(t time.Time, ext string) string {
	return fmt.Sprintf("transactions_%s.%s", t.Format("20060102"), ext)
}

// WriteXLSX writes the report as a single-sheet workbook.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for idx, row := range r.Rows {
		n := idx + 2
		values := []interface{}{
			string(row.Kind),
			row.Label,
			row.Amount.InexactFloat64(),
			row.Description,
			row.Date.Format("2006-01-02"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, n)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	total := len(r.Rows) + 3
	summary := [][]interface{}{
		{"Total Income", r.Summary.TotalIncome.InexactFloat64()},
		{"Total Expense", r.Summary.TotalExpense.InexactFloat64()},
		{"Balance", r.Summary.Balance.InexactFloat64()},
	}
	for i, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(2, total+i)
		if err := f.SetSheetRow(sheetName, cell, &line); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 10)
	_ = f.SetColWidth(sheetName, "B", "B", 18)
	_ = f.SetColWidth(sheetName, "C", "C", 12)
	_ = f.SetColWidth(sheetName, "D", "D", 40)
	_ = f.SetColWidth(sheetName, "E", "E", 12)

	return f.Write(w)
}

// WritePDF writes the report as an A4 table with a totals header.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Transactions Report")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{60, 60, 60}
	pdf.CellFormat(sumW[0], 10, "Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Expense", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Balance", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, r.Summary.TotalIncome.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, r.Summary.TotalExpense.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, r.Summary.Balance.StringFixed(2), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{22, 34, 28, 72, 26}
	tableHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		for i, h := range headers {
			align := "C"
			if i == 2 {
				align = "R"
			}
			ln := 0
			if i == len(headers)-1 {
				ln = 1
			}
			pdf.CellFormat(colW[i], 8, strings.ToUpper(h), "1", ln, align, true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
	}
	tableHeader()

	for _, row := range r.Rows {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			tableHeader()
		}
		pdf.CellFormat(colW[0], 8, string(row.Kind), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, row.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 8, row.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 8, truncate(row.Description, 45), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[4], 8, row.Date.Format("2006-01-02"), "1", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
