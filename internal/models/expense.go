package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
)

// ExpenseCategory is the closed set of expense classifications.
type ExpenseCategory string

const (
	CategoryFood            ExpenseCategory = "Food"
	CategoryShopping        ExpenseCategory = "Shopping"
	CategoryBills           ExpenseCategory = "Bills"
	CategoryEntertainment   ExpenseCategory = "Entertainment"
	CategoryInsurance       ExpenseCategory = "Insurance"
	CategoryRent            ExpenseCategory = "Rent"
	CategoryTravel          ExpenseCategory = "Travel"
	CategoryEducation       ExpenseCategory = "Education"
	CategoryGifts           ExpenseCategory = "Gifts"
	CategoryFuel            ExpenseCategory = "Fuel"
	CategoryLoans           ExpenseCategory = "Loans"
	CategoryInvestment      ExpenseCategory = "Investment"
	CategoryHealth          ExpenseCategory = "Health"
	CategoryOther           ExpenseCategory = "Other"
	CategoryBankTransaction ExpenseCategory = "Bank Transaction"
)

// ExpenseCategories lists every valid category in display order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood, CategoryShopping, CategoryBills, CategoryEntertainment,
	CategoryInsurance, CategoryRent, CategoryTravel, CategoryEducation,
	CategoryGifts, CategoryFuel, CategoryLoans, CategoryInvestment,
	CategoryHealth, CategoryOther, CategoryBankTransaction,
}

// ParseExpenseCategory returns the canonical category matching s, ignoring case.
func ParseExpenseCategory(s string) (ExpenseCategory, bool) {
	s = strings.TrimSpace(s)
	for _, c := range ExpenseCategories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Expense is money spent by a user.
type Expense struct {
	Transaction
	Category ExpenseCategory `gorm:"not null;index" json:"category"`
}

// Label returns the expense category.
func (e Expense) Label() string { return string(e.Category) }

// Kind returns KindExpense.
func (e Expense) Kind() Kind { return KindExpense }

// NewExpense builds a validated expense. A zero date means today.
func NewExpense(userID string, amount decimal.Decimal, category string, description string, date time.Time) (*Expense, error) {
	cat, ok := ParseExpenseCategory(category)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidCategory, "invalid expense category: "+category)
	}
	t, err := newTransaction(userID, amount, description, date)
	if err != nil {
		return nil, err
	}
	return &Expense{Transaction: t, Category: cat}, nil
}
