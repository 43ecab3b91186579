package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/aggregate"
	"fintrack/internal/budget"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/query"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	SetMonthlyBudgetLimit(userID string, limit *decimal.Decimal) (*models.User, error)
}

// ExpenseUpdate holds the fields of a partial expense update. Nil fields are left unchanged.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Date        *time.Time
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID string, amount decimal.Decimal, category, description string, date time.Time) (*models.Expense, error)
	ListExpenses(userID string, params query.Params) (*pagination.PageResponse[models.Expense], error)
	ListExpenseHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, update ExpenseUpdate) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// IncomeUpdate holds the fields of a partial income update. Nil fields are left unchanged.
type IncomeUpdate struct {
	Amount      *decimal.Decimal
	Source      *string
	Description *string
	Date        *time.Time
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID string, amount decimal.Decimal, source, description string, date time.Time) (*models.Income, error)
	ListIncomes(userID string, params query.Params) (*pagination.PageResponse[models.Income], error)
	ListIncomeHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID string) (*models.Income, error)
	UpdateIncome(userID, incomeID string, update IncomeUpdate) (*models.Income, error)
	DeleteIncome(userID, incomeID string) error
}

// Summary is the balance sheet plus breakdowns for a user.
type Summary struct {
	aggregate.Summary
	ExpenseByCategory map[string]decimal.Decimal `json:"expense_by_category"`
	IncomeBySource    map[string]decimal.Decimal `json:"income_by_source"`
	MonthlyExpenses   map[string]decimal.Decimal `json:"monthly_expenses"`
	MonthlyIncome     map[string]decimal.Decimal `json:"monthly_income"`
}

// SummaryServicer defines the contract for summary computation.
type SummaryServicer interface {
	GetSummary(userID string, dateRange query.Params) (*Summary, error)
}

// TrendReport is the monthly expense series and its chart.
type TrendReport struct {
	Monthly []aggregate.Point `json:"monthly"`
	Chart   string            `json:"chart"`
}

// AnalysisReport compares income and expenses month by month.
type AnalysisReport struct {
	Summary
	IncomeVsExpenseChart string `json:"income_vs_expense_chart"`
	CategoryChart        string `json:"category_chart,omitempty"`
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// ReportServicer defines the contract for charts and exports.
type ReportServicer interface {
	ExpenseTrends(userID string) (*TrendReport, error)
	Analysis(userID string, dateRange query.Params) (*AnalysisReport, error)
	Export(userID, format string, dateRange query.Params) (*ExportFile, error)
}

// ImportResult summarizes a committed statement import.
type ImportResult struct {
	Bank     string `json:"bank"`
	Imported int    `json:"imported"`
	Expenses int    `json:"expenses"`
	Incomes  int    `json:"incomes"`
}

// ImportServicer defines the contract for bank statement imports.
type ImportServicer interface {
	ImportStatement(userID, filename string, r io.Reader) (*ImportResult, error)
}

// BudgetAlert is the evaluation for one calendar month.
type BudgetAlert struct {
	budget.Alert
	Month int `json:"month"`
	Year  int `json:"year"`
}

// BudgetAlertServicer defines the contract for budget alert checks.
type BudgetAlertServicer interface {
	CheckBudget(userID string, month, year int) (*BudgetAlert, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
