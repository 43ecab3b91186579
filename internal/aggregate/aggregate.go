// Package aggregate reduces transaction collections to totals and
// breakdowns. Every function skips soft-deleted entries and is independent
// of input order.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

// PeriodLayout formats a period key ("2024-03").
const PeriodLayout = "2006-01"

// Summary is the top-level balance sheet for a set of transactions.
type Summary struct {
	TotalExpense decimal.Decimal `json:"total_expense"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	Balance      decimal.Decimal `json:"balance"`
}

// Point is one value of a period series.
type Point struct {
	Period string          `json:"period"`
	Amount decimal.Decimal `json:"amount"`
}

// Total sums the amounts of active entries. Empty input yields zero.
func Total[T models.Entry](entries []T) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		sum = sum.Add(e.GetAmount())
	}
	return sum
}

// Summarize computes total expense, total income and balance = income - expense.
func Summarize[E, I models.Entry](expenses []E, incomes []I) Summary {
	exp := Total(expenses)
	inc := Total(incomes)
	return Summary{
		TotalExpense: exp,
		TotalIncome:  inc,
		Balance:      inc.Sub(exp),
	}
}

// ByLabel groups active entries by category or source. Labels with no
// entries are absent from the result.
func ByLabel[T models.Entry](entries []T) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		out[e.Label()] = out[e.Label()].Add(e.GetAmount())
	}
	return out
}

// Monthly groups active entries by the period of their date.
func Monthly[T models.Entry](entries []T) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Deleted() {
			continue
		}
		key := PeriodKey(e)
		out[key] = out[key].Add(e.GetAmount())
	}
	return out
}

// PeriodKey returns the "YYYY-MM" period of an entry's date.
func PeriodKey(e models.Entry) string {
	return e.GetDate().Format(PeriodLayout)
}

// SortedPeriods turns a period map into an ascending series.
func SortedPeriods(m map[string]decimal.Decimal) []Point {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Point, len(keys))
	for i, k := range keys {
		out[i] = Point{Period: k, Amount: m[k]}
	}
	return out
}

// MergePeriods returns the ascending union of period keys across maps.
func MergePeriods(maps ...map[string]decimal.Decimal) []string {
	seen := make(map[string]struct{})
	for _, m := range maps {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
