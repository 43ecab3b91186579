package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/query"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db    *gorm.DB
	cache *SummaryCache
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, summaryCache *SummaryCache) ExpenseServicer {
	return &expenseService{db: db, cache: summaryCache}
}

// CreateExpense records a new expense. A zero date means today.
func (s *expenseService) CreateExpense(userID string, amount decimal.Decimal, category, description string, date time.Time) (*models.Expense, error) {
	expense, err := models.NewExpense(userID, amount, category, description, date)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.Invalidate(userID)
	return expense, nil
}

// ListExpenses runs the filter chain over the user's active expenses.
func (s *expenseService) ListExpenses(userID string, params query.Params) (*pagination.PageResponse[models.Expense], error) {
	expenses, err := listByUser[models.Expense](s.db, userID, ActiveOnly)
	if err != nil {
		return nil, err
	}
	page := query.Apply(expenses, params)
	return &page, nil
}

// ListExpenseHistory pages through all expenses including soft-deleted ones.
func (s *expenseService) ListExpenseHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	return history[models.Expense](s.db, userID, page)
}

// GetExpenseByID retrieves an active expense owned by the user.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	return findOwned[models.Expense](s.db, userID, expenseID, apperrors.ErrExpenseNotFound)
}

// UpdateExpense applies a partial update. The result is validated like a new expense.
func (s *expenseService) UpdateExpense(userID, expenseID string, update ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	amount := expense.Amount
	if update.Amount != nil {
		amount = *update.Amount
	}
	category := string(expense.Category)
	if update.Category != nil {
		category = *update.Category
	}
	description := expense.Description
	if update.Description != nil {
		description = *update.Description
	}
	date := expense.Date
	if update.Date != nil {
		date = *update.Date
	}

	validated, err := models.NewExpense(userID, amount, category, description, date)
	if err != nil {
		return nil, err
	}
	expense.Amount = validated.Amount
	expense.Category = validated.Category
	expense.Description = validated.Description
	expense.Date = validated.Date

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.Invalidate(userID)
	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	if err := softDelete[models.Expense](s.db, userID, expenseID, apperrors.ErrExpenseNotFound); err != nil {
		return err
	}
	s.cache.Invalidate(userID)
	return nil
}
