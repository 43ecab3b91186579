package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/chart"
	"fintrack/internal/models"
	"fintrack/internal/query"
	"fintrack/internal/testutil"
)

// stubRenderer returns fixed bytes and records what it was asked to draw.
type stubRenderer struct {
	trend      []aggregate.Point
	income     map[string]decimal.Decimal
	expense    map[string]decimal.Decimal
	breakdown  map[string]decimal.Decimal
	breakdowns int
	err        error
}

func (r *stubRenderer) Trend(_ string, series []aggregate.Point) ([]byte, error) {
	r.trend = series
	return []byte("trend"), r.err
}

func (r *stubRenderer) IncomeVsExpense(income, expense map[string]decimal.Decimal) ([]byte, error) {
	r.income, r.expense = income, expense
	return []byte("bars"), r.err
}

func (r *stubRenderer) Breakdown(_ string, byLabel map[string]decimal.Decimal) ([]byte, error) {
	r.breakdown = byLabel
	r.breakdowns++
	return []byte("pie"), r.err
}

func TestExpenseTrends(t *testing.T) {
	t.Run("monthly_series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		renderer := &stubRenderer{}
		svc := NewReportService(db, renderer)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, "30", models.CategoryFood, testutil.Date(t, "2024-03-01"))
		testutil.CreateTestExpense(t, db, user.ID, "10", models.CategoryFood, testutil.Date(t, "2024-01-15"))
		testutil.CreateTestExpense(t, db, user.ID, "5", models.CategoryRent, testutil.Date(t, "2024-01-20"))

		report, err := svc.ExpenseTrends(user.ID)
		testutil.AssertNoError(t, err)

		if len(report.Monthly) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(report.Monthly))
		}
		if report.Monthly[0].Period != "2024-01" || report.Monthly[1].Period != "2024-03" {
			t.Errorf("expected ascending periods, got %+v", report.Monthly)
		}
		testutil.AssertDecimal(t, report.Monthly[0].Amount, "15")
		if report.Chart != chart.Encode([]byte("trend")) {
			t.Errorf("expected encoded chart, got %q", report.Chart)
		}
	})

	t.Run("no_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, &stubRenderer{})
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestIncome(t, db, user.ID, "100", models.SourceSalary, time.Time{})

		_, err := svc.ExpenseTrends(user.ID)
		testutil.AssertAppError(t, err, "NO_EXPENSE_DATA")
	})

	t.Run("renderer_failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, &stubRenderer{err: errors.New("boom")})
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, user.ID, "1", models.CategoryFood, time.Time{})

		_, err := svc.ExpenseTrends(user.ID)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}

func TestAnalysis(t *testing.T) {
	t.Run("income_only_skips_category_chart", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		renderer := &stubRenderer{}
		svc := NewReportService(db, renderer)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestIncome(t, db, user.ID, "100", models.SourceSalary, testutil.Date(t, "2024-05-01"))

		report, err := svc.Analysis(user.ID, query.Params{})
		testutil.AssertNoError(t, err)

		if report.CategoryChart != "" || renderer.breakdowns != 0 {
			t.Error("expected no category chart without expenses")
		}
		testutil.AssertDecimal(t, renderer.income["2024-05"], "100")
		testutil.AssertDecimal(t, report.Balance, "100")
	})

	t.Run("both_kinds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		renderer := &stubRenderer{}
		svc := NewReportService(db, renderer)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestIncome(t, db, user.ID, "100", models.SourceSalary, testutil.Date(t, "2024-05-01"))
		testutil.CreateTestExpense(t, db, user.ID, "40", models.CategoryTravel, testutil.Date(t, "2024-05-02"))

		report, err := svc.Analysis(user.ID, query.Params{})
		testutil.AssertNoError(t, err)

		if report.CategoryChart == "" {
			t.Error("expected category chart")
		}
		testutil.AssertDecimal(t, renderer.breakdown["Travel"], "40")
		testutil.AssertDecimal(t, renderer.expense["2024-05"], "40")
	})

	t.Run("no_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, &stubRenderer{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Analysis(user.ID, query.Params{})
		testutil.AssertAppError(t, err, "NO_FINANCIAL_DATA")
	})

	t.Run("real_renderer", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReportService(db, chart.NewPNG())
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestIncome(t, db, user.ID, "100", models.SourceSalary, testutil.Date(t, "2024-05-01"))
		testutil.CreateTestExpense(t, db, user.ID, "40", models.CategoryTravel, testutil.Date(t, "2024-06-02"))

		report, err := svc.Analysis(user.ID, query.Params{})
		testutil.AssertNoError(t, err)
		if report.IncomeVsExpenseChart == "" || report.CategoryChart == "" {
			t.Error("expected both charts to be rendered")
		}
	})
}

func TestExport(t *testing.T) {
	newSvc := func(t *testing.T) (ReportServicer, string) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, user.ID, "12.50", models.CategoryFood, testutil.Date(t, "2024-01-02"))
		testutil.CreateTestIncome(t, db, user.ID, "100", models.SourceSalary, testutil.Date(t, "2024-01-01"))
		svc := NewReportService(db, &stubRenderer{})
		svc.(*reportService).now = func() time.Time { return time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC) }
		return svc, user.ID
	}

	t.Run("xlsx", func(t *testing.T) {
		svc, userID := newSvc(t)

		file, err := svc.Export(userID, FormatXLSX, query.Params{})
		testutil.AssertNoError(t, err)

		if file.Filename != "transactions_20240704.xlsx" {
			t.Errorf("unexpected filename %q", file.Filename)
		}
		if !bytes.HasPrefix(file.Data, []byte("PK")) {
			t.Error("expected a zip container")
		}
	})

	t.Run("pdf", func(t *testing.T) {
		svc, userID := newSvc(t)

		file, err := svc.Export(userID, FormatPDF, query.Params{})
		testutil.AssertNoError(t, err)

		if file.ContentType != "application/pdf" {
			t.Errorf("unexpected content type %q", file.ContentType)
		}
		if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
			t.Error("expected a PDF document")
		}
	})

	t.Run("unknown_format", func(t *testing.T) {
		svc, userID := newSvc(t)

		_, err := svc.Export(userID, "docx", query.Params{})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
