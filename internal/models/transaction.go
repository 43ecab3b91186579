package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
)

// Kind identifies which table a transaction lives in.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Transaction is the shape shared by expenses and incomes.
//
// UserID references users.id with ON DELETE CASCADE (see migrations).
// Month and Year cache the calendar period of Date for indexed period lookups.
// They are recomputed by BeforeSave on every create and save, so an edited date
// and its cache are always written together.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	IsDeleted   bool            `gorm:"not null;default:false;index" json:"is_deleted"`
	Month       int             `gorm:"not null;index" json:"month"`
	Year        int             `gorm:"not null;index" json:"year"`
}

// BeforeSave keeps the cached month/year in step with Date.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Date = DateOf(t.Date)
	t.Month = int(t.Date.Month())
	t.Year = t.Date.Year()
	return nil
}

// GetID returns the record ID.
func (t Transaction) GetID() string { return t.ID }

// GetAmount returns the monetary amount.
func (t Transaction) GetAmount() decimal.Decimal { return t.Amount }

// GetDate returns the calendar date of the transaction.
func (t Transaction) GetDate() time.Time { return t.Date }

// GetDescription returns the free-text description.
func (t Transaction) GetDescription() string { return t.Description }

// GetCreatedAt returns the creation timestamp.
func (t Transaction) GetCreatedAt() time.Time { return t.CreatedAt }

// Deleted reports whether the transaction has been soft-deleted.
func (t Transaction) Deleted() bool { return t.IsDeleted }

// Entry is the read-only view of a transaction used by the query chain,
// the aggregation engine and the exporters.
type Entry interface {
	GetID() string
	GetAmount() decimal.Decimal
	GetDate() time.Time
	GetDescription() string
	GetCreatedAt() time.Time
	Deleted() bool
	Label() string
	Kind() Kind
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MaxAmount is the exclusive upper bound of a numeric(10,2) amount.
var MaxAmount = decimal.New(1, 8)

// ValidateAmount accepts positive amounts with at most two decimal places
// that fit numeric(10,2).
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !amount.Round(2).Equal(amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most 2 decimal places")
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be less than 100000000")
	}
	return nil
}

func newTransaction(userID string, amount decimal.Decimal, description string, date time.Time) (Transaction, error) {
	if err := ValidateAmount(amount); err != nil {
		return Transaction{}, err
	}
	if date.IsZero() {
		date = time.Now()
	}
	date = DateOf(date)
	return Transaction{
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Date:        date,
		Month:       int(date.Month()),
		Year:        date.Year(),
	}, nil
}
