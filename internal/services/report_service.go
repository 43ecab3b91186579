package services

import (
	"bytes"
	"time"

	"gorm.io/gorm"

	"fintrack/internal/aggregate"
	"fintrack/internal/chart"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/export"
	"fintrack/internal/models"
	"fintrack/internal/query"
)

// reportService renders charts and exports from active transactions.
type reportService struct {
	db       *gorm.DB
	renderer chart.Renderer
	now      func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, renderer chart.Renderer) ReportServicer {
	return &reportService{db: db, renderer: renderer, now: time.Now}
}

// ExpenseTrends returns the monthly expense series with a line chart.
func (s *reportService) ExpenseTrends(userID string) (*TrendReport, error) {
	expenses, err := listByUser[models.Expense](s.db, userID, ActiveOnly)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, apperrors.ErrNoExpenseData
	}

	series := aggregate.SortedPeriods(aggregate.Monthly(expenses))
	img, err := s.renderer.Trend("Expense Trends Over Time", series)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &TrendReport{Monthly: series, Chart: chart.Encode(img)}, nil
}

// Analysis compares monthly income and expenses and breaks expenses down by category.
func (s *reportService) Analysis(userID string, dateRange query.Params) (*AnalysisReport, error) {
	expenses, incomes, err := loadActive(s.db, userID, dateRange)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 && len(incomes) == 0 {
		return nil, apperrors.ErrNoFinancialData
	}

	report := &AnalysisReport{Summary: *buildSummary(expenses, incomes)}

	img, err := s.renderer.IncomeVsExpense(report.MonthlyIncome, report.MonthlyExpenses)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	report.IncomeVsExpenseChart = chart.Encode(img)

	if len(expenses) > 0 {
		img, err := s.renderer.Breakdown("Expense Breakdown by Category", report.ExpenseByCategory)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		report.CategoryChart = chart.Encode(img)
	}
	return report, nil
}

// Export renders the user's active transactions as an XLSX or PDF file.
func (s *reportService) Export(userID, format string, dateRange query.Params) (*ExportFile, error) {
	if format != FormatXLSX && format != FormatPDF {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "export format must be xlsx or pdf")
	}

	expenses, incomes, err := loadActive(s.db, userID, dateRange)
	if err != nil {
		return nil, err
	}
	now := s.now()
	report := export.NewReport(expenses, incomes, now)

	var buf bytes.Buffer
	file := &ExportFile{Filename: export.Filename(now, format)}
	switch format {
	case FormatXLSX:
		file.ContentType = export.ContentTypeXLSX
		err = export.WriteXLSX(&buf, report)
	case FormatPDF:
		file.ContentType = export.ContentTypePDF
		err = export.WritePDF(&buf, report)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	file.Data = buf.Bytes()
	return file, nil
}
