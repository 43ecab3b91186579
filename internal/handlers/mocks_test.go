package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/query"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

const testUserID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
const testExpenseID = "0190a1b2-c3d4-7e5f-8a9b-000000000001"

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password, firstName, lastName string) (*models.User, error)
	getUserByEmailFn        func(email string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	verifyPasswordFn        func(user *models.User, password string) bool
	attemptLoginFn          func(email, password string) (*models.User, error)
	setMonthlyBudgetLimitFn func(userID string, limit *decimal.Decimal) (*models.User, error)
}

func (m *mockUserService) CreateUser(email, password, firstName, lastName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, firstName, lastName)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) SetMonthlyBudgetLimit(userID string, limit *decimal.Decimal) (*models.User, error) {
	if m.setMonthlyBudgetLimitFn != nil {
		return m.setMonthlyBudgetLimitFn(userID, limit)
	}
	return &models.User{}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

type mockExpenseService struct {
	createExpenseFn      func(userID string, amount decimal.Decimal, category, description string, date time.Time) (*models.Expense, error)
	listExpensesFn       func(userID string, params query.Params) (*pagination.PageResponse[models.Expense], error)
	listExpenseHistoryFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	getExpenseByIDFn     func(userID, expenseID string) (*models.Expense, error)
	updateExpenseFn      func(userID, expenseID string, update services.ExpenseUpdate) (*models.Expense, error)
	deleteExpenseFn      func(userID, expenseID string) error
}

func (m *mockExpenseService) CreateExpense(userID string, amount decimal.Decimal, category, description string, date time.Time) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, amount, category, description, date)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) ListExpenses(userID string, params query.Params) (*pagination.PageResponse[models.Expense], error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(userID, params)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockExpenseService) ListExpenseHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.listExpenseHistoryFn != nil {
		return m.listExpenseHistoryFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID string, update services.ExpenseUpdate) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, update)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

type mockIncomeService struct {
	createIncomeFn func(userID string, amount decimal.Decimal, source, description string, date time.Time) (*models.Income, error)
	listIncomesFn  func(userID string, params query.Params) (*pagination.PageResponse[models.Income], error)
	updateIncomeFn func(userID, incomeID string, update services.IncomeUpdate) (*models.Income, error)
	deleteIncomeFn func(userID, incomeID string) error
}

func (m *mockIncomeService) CreateIncome(userID string, amount decimal.Decimal, source, description string, date time.Time) (*models.Income, error) {
	if m.createIncomeFn != nil {
		return m.createIncomeFn(userID, amount, source, description, date)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) ListIncomes(userID string, params query.Params) (*pagination.PageResponse[models.Income], error) {
	if m.listIncomesFn != nil {
		return m.listIncomesFn(userID, params)
	}
	resp := pagination.NewPageResponse([]models.Income{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockIncomeService) ListIncomeHistory(string, pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	resp := pagination.NewPageResponse([]models.Income{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockIncomeService) GetIncomeByID(string, string) (*models.Income, error) {
	return &models.Income{}, nil
}

func (m *mockIncomeService) UpdateIncome(userID, incomeID string, update services.IncomeUpdate) (*models.Income, error) {
	if m.updateIncomeFn != nil {
		return m.updateIncomeFn(userID, incomeID, update)
	}
	return &models.Income{}, nil
}

func (m *mockIncomeService) DeleteIncome(userID, incomeID string) error {
	if m.deleteIncomeFn != nil {
		return m.deleteIncomeFn(userID, incomeID)
	}
	return nil
}

var _ services.IncomeServicer = (*mockIncomeService)(nil)

type mockSummaryService struct {
	getSummaryFn func(userID string, dateRange query.Params) (*services.Summary, error)
}

func (m *mockSummaryService) GetSummary(userID string, dateRange query.Params) (*services.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, dateRange)
	}
	return &services.Summary{}, nil
}

type mockReportService struct {
	expenseTrendsFn func(userID string) (*services.TrendReport, error)
	analysisFn      func(userID string, dateRange query.Params) (*services.AnalysisReport, error)
	exportFn        func(userID, format string, dateRange query.Params) (*services.ExportFile, error)
}

func (m *mockReportService) ExpenseTrends(userID string) (*services.TrendReport, error) {
	if m.expenseTrendsFn != nil {
		return m.expenseTrendsFn(userID)
	}
	return &services.TrendReport{}, nil
}

func (m *mockReportService) Analysis(userID string, dateRange query.Params) (*services.AnalysisReport, error) {
	if m.analysisFn != nil {
		return m.analysisFn(userID, dateRange)
	}
	return &services.AnalysisReport{}, nil
}

func (m *mockReportService) Export(userID, format string, dateRange query.Params) (*services.ExportFile, error) {
	if m.exportFn != nil {
		return m.exportFn(userID, format, dateRange)
	}
	return &services.ExportFile{}, nil
}

type mockImportService struct {
	importStatementFn func(userID, filename string, r io.Reader) (*services.ImportResult, error)
}

func (m *mockImportService) ImportStatement(userID, filename string, r io.Reader) (*services.ImportResult, error) {
	if m.importStatementFn != nil {
		return m.importStatementFn(userID, filename, r)
	}
	return &services.ImportResult{}, nil
}

type mockBudgetAlertService struct {
	checkBudgetFn func(userID string, month, year int) (*services.BudgetAlert, error)
}

func (m *mockBudgetAlertService) CheckBudget(userID string, month, year int) (*services.BudgetAlert, error) {
	if m.checkBudgetFn != nil {
		return m.checkBudgetFn(userID, month, year)
	}
	return &services.BudgetAlert{}, nil
}

// mockAuditService records the actions it was asked to log.
type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(_, action, _, _, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
