package services

import (
	"time"

	"gorm.io/gorm"

	"fintrack/internal/aggregate"
	"fintrack/internal/budget"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// budgetAlertService checks monthly spending against the user's limit.
type budgetAlertService struct {
	db          *gorm.DB
	userService UserServicer
	now         func() time.Time
}

// NewBudgetAlertService creates a new BudgetAlertServicer.
func NewBudgetAlertService(db *gorm.DB, userService UserServicer) BudgetAlertServicer {
	return &budgetAlertService{db: db, userService: userService, now: time.Now}
}

// CheckBudget evaluates the given month. Zero month or year means the current one.
// It reads only and may be called any number of times.
func (s *budgetAlertService) CheckBudget(userID string, month, year int) (*BudgetAlert, error) {
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	expenses, err := listByUser[models.Expense](s.db, userID, ActiveOnly, inPeriod(month, year))
	if err != nil {
		return nil, err
	}

	return &BudgetAlert{
		Alert: budget.Evaluate(user.MonthlyBudgetLimit, aggregate.Total(expenses)),
		Month: month,
		Year:  year,
	}, nil
}

// inPeriod filters on the cached month/year columns, which BeforeSave keeps
// in step with the date.
func inPeriod(month, year int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("month = ? AND year = ?", month, year)
	}
}
