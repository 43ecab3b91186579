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

// incomeService handles income-related business logic.
type incomeService struct {
	db    *gorm.DB
	cache *SummaryCache
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, summaryCache *SummaryCache) IncomeServicer {
	return &incomeService{db: db, cache: summaryCache}
}

// CreateIncome records a new income. A zero date means today.
func (s *incomeService) CreateIncome(userID string, amount decimal.Decimal, source, description string, date time.Time) (*models.Income, error) {
	income, err := models.NewIncome(userID, amount, source, description, date)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.Invalidate(userID)
	return income, nil
}

// ListIncomes runs the filter chain over the user's active incomes.
func (s *incomeService) ListIncomes(userID string, params query.Params) (*pagination.PageResponse[models.Income], error) {
	incomes, err := listByUser[models.Income](s.db, userID, ActiveOnly)
	if err != nil {
		return nil, err
	}
	page := query.Apply(incomes, params)
	return &page, nil
}

// ListIncomeHistory pages through all incomes including soft-deleted ones.
func (s *incomeService) ListIncomeHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	return history[models.Income](s.db, userID, page)
}

// GetIncomeByID retrieves an active income owned by the user.
func (s *incomeService) GetIncomeByID(userID, incomeID string) (*models.Income, error) {
	return findOwned[models.Income](s.db, userID, incomeID, apperrors.ErrIncomeNotFound)
}

// UpdateIncome applies a partial update. The result is validated like a new income.
func (s *incomeService) UpdateIncome(userID, incomeID string, update IncomeUpdate) (*models.Income, error) {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return nil, err
	}

	amount := income.Amount
	if update.Amount != nil {
		amount = *update.Amount
	}
	source := string(income.Source)
	if update.Source != nil {
		source = *update.Source
	}
	description := income.Description
	if update.Description != nil {
		description = *update.Description
	}
	date := income.Date
	if update.Date != nil {
		date = *update.Date
	}

	validated, err := models.NewIncome(userID, amount, source, description, date)
	if err != nil {
		return nil, err
	}
	income.Amount = validated.Amount
	income.Source = validated.Source
	income.Description = validated.Description
	income.Date = validated.Date

	if err := s.db.Save(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.cache.Invalidate(userID)
	return income, nil
}

// DeleteIncome soft-deletes an income.
func (s *incomeService) DeleteIncome(userID, incomeID string) error {
	if err := softDelete[models.Income](s.db, userID, incomeID, apperrors.ErrIncomeNotFound); err != nil {
		return err
	}
	s.cache.Invalidate(userID)
	return nil
}
