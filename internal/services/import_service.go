package services

import (
	"io"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/statement"
)

// importService commits parsed bank statements.
type importService struct {
	db       *gorm.DB
	registry *statement.Registry
	cache    *SummaryCache
}

// NewImportService creates a new ImportServicer.
func NewImportService(db *gorm.DB, registry *statement.Registry, summaryCache *SummaryCache) ImportServicer {
	if registry == nil {
		registry = statement.DefaultRegistry()
	}
	return &importService{db: db, registry: registry, cache: summaryCache}
}

// ImportStatement parses a statement and inserts every row in one database
// transaction. Nothing is written unless the whole file is valid.
func (s *importService) ImportStatement(userID, filename string, r io.Reader) (*ImportResult, error) {
	parsed, err := statement.Parse(filename, r, s.registry)
	if err != nil {
		return nil, err
	}

	expenses := make([]models.Expense, 0, parsed.Debits())
	incomes := make([]models.Income, 0, len(parsed.Rows)-parsed.Debits())
	for _, row := range parsed.Rows {
		switch row.Direction {
		case statement.Debit:
			e, err := models.NewExpense(userID, row.Amount, string(models.CategoryBankTransaction), row.Description, row.Date)
			if err != nil {
				return nil, err
			}
			expenses = append(expenses, *e)
		case statement.Credit:
			i, err := models.NewIncome(userID, row.Amount, string(models.SourceBankDeposit), row.Description, row.Date)
			if err != nil {
				return nil, err
			}
			incomes = append(incomes, *i)
		}
	}

	result := &ImportResult{Bank: parsed.Bank}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		if result.Expenses, txErr = insertMany(tx, expenses); txErr != nil {
			return txErr
		}
		result.Incomes, txErr = insertMany(tx, incomes)
		return txErr
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	result.Imported = result.Expenses + result.Incomes

	logger.Get().Infow("statement imported",
		"user_id", userID,
		"bank", result.Bank,
		"expenses", result.Expenses,
		"incomes", result.Incomes,
	)
	s.cache.Invalidate(userID)
	return result, nil
}
