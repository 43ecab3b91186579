package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func exp(amount string, category models.ExpenseCategory, date string, deleted bool) models.Expense {
	d, _ := time.Parse("2006-01-02", date)
	return models.Expense{
		Transaction: models.Transaction{
			Amount:    decimal.RequireFromString(amount),
			Date:      d,
			IsDeleted: deleted,
		},
		Category: category,
	}
}

func inc(amount string, source models.IncomeSource, date string) models.Income {
	d, _ := time.Parse("2006-01-02", date)
	return models.Income{
		Transaction: models.Transaction{Amount: decimal.RequireFromString(amount), Date: d},
		Source:      source,
	}
}

func TestTotal(t *testing.T) {
	t.Run("empty_is_zero", func(t *testing.T) {
		testutil.AssertDecimal(t, Total([]models.Expense{}), "0")
		testutil.AssertDecimal(t, Total[models.Expense](nil), "0")
	})

	t.Run("exact_decimal_sum", func(t *testing.T) {
		items := []models.Expense{
			exp("0.10", models.CategoryFood, "2024-01-01", false),
			exp("0.20", models.CategoryFood, "2024-01-02", false),
		}
		testutil.AssertDecimal(t, Total(items), "0.30")
	})

	t.Run("skips_deleted", func(t *testing.T) {
		items := []models.Expense{
			exp("10", models.CategoryFood, "2024-01-01", false),
			exp("99", models.CategoryFood, "2024-01-01", true),
		}
		testutil.AssertDecimal(t, Total(items), "10")
	})
}

func TestSummarize(t *testing.T) {
	expenses := []models.Expense{
		exp("300", models.CategoryRent, "2024-01-01", false),
		exp("50.75", models.CategoryFood, "2024-01-03", false),
	}
	incomes := []models.Income{
		inc("1000", models.SourceSalary, "2024-01-01"),
	}

	s := Summarize(expenses, incomes)
	testutil.AssertDecimal(t, s.TotalExpense, "350.75")
	testutil.AssertDecimal(t, s.TotalIncome, "1000")
	testutil.AssertDecimal(t, s.Balance, "649.25")

	t.Run("negative_balance", func(t *testing.T) {
		s := Summarize(expenses, []models.Income{})
		testutil.AssertDecimal(t, s.Balance, "-350.75")
	})
}

func TestByLabel(t *testing.T) {
	items := []models.Expense{
		exp("10", models.CategoryFood, "2024-01-01", false),
		exp("15", models.CategoryFood, "2024-02-01", false),
		exp("40", models.CategoryTravel, "2024-01-10", false),
		exp("70", models.CategoryBills, "2024-01-10", true),
	}

	got := ByLabel(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 labels, got %v", got)
	}
	testutil.AssertDecimal(t, got["Food"], "25")
	testutil.AssertDecimal(t, got["Travel"], "40")
	if _, ok := got["Bills"]; ok {
		t.Error("deleted-only label should be absent")
	}
}

func TestMonthly(t *testing.T) {
	t.Run("groups_by_date_period", func(t *testing.T) {
		items := []models.Expense{
			exp("10", models.CategoryFood, "2024-01-31", false),
			exp("20", models.CategoryFood, "2024-02-01", false),
			exp("5", models.CategoryFood, "2024-02-29", false),
			exp("7", models.CategoryFood, "2023-12-15", false),
		}
		got := Monthly(items)
		testutil.AssertDecimal(t, got["2024-01"], "10")
		testutil.AssertDecimal(t, got["2024-02"], "25")
		testutil.AssertDecimal(t, got["2023-12"], "7")

		series := SortedPeriods(got)
		want := []string{"2023-12", "2024-01", "2024-02"}
		for i, p := range series {
			if p.Period != want[i] {
				t.Errorf("series[%d] = %s, want %s", i, p.Period, want[i])
			}
		}
	})

	t.Run("ignores_stale_cached_period", func(t *testing.T) {
		e := exp("12", models.CategoryFood, "2024-05-10", false)
		e.Month, e.Year = 1, 1999
		got := Monthly([]models.Expense{e})
		testutil.AssertDecimal(t, got["2024-05"], "12")
	})

	t.Run("order_independent", func(t *testing.T) {
		a := []models.Expense{
			exp("1", models.CategoryFood, "2024-01-01", false),
			exp("2", models.CategoryFood, "2024-02-01", false),
			exp("3", models.CategoryFood, "2024-01-15", false),
		}
		b := []models.Expense{a[2], a[0], a[1]}
		ma, mb := Monthly(a), Monthly(b)
		for k, v := range ma {
			if !mb[k].Equal(v) {
				t.Errorf("period %s differs: %s vs %s", k, v, mb[k])
			}
		}
	})
}

func TestMergePeriods(t *testing.T) {
	a := map[string]decimal.Decimal{"2024-02": decimal.NewFromInt(1)}
	b := map[string]decimal.Decimal{"2024-01": decimal.NewFromInt(1), "2024-02": decimal.NewFromInt(2)}
	got := MergePeriods(a, b)
	if len(got) != 2 || got[0] != "2024-01" || got[1] != "2024-02" {
		t.Errorf("unexpected periods %v", got)
	}
}
