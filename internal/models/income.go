package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fintrack/internal/errors"
)

// IncomeSource is the closed set of income classifications.
type IncomeSource string

const (
	SourceSalary      IncomeSource = "Salary"
	SourceBonus       IncomeSource = "Bonus"
	SourceAward       IncomeSource = "Award"
	SourceRefund      IncomeSource = "Refund"
	SourceInterest    IncomeSource = "Interest"
	SourceDividends   IncomeSource = "Dividends"
	SourceFreelance   IncomeSource = "Freelance"
	SourceBusiness    IncomeSource = "Business"
	SourceOther       IncomeSource = "Other"
	SourceBankDeposit IncomeSource = "Bank Deposit"
)

// IncomeSources lists every valid source in display order.
var IncomeSources = []IncomeSource{
	SourceSalary, SourceBonus, SourceAward, SourceRefund, SourceInterest,
	SourceDividends, SourceFreelance, SourceBusiness, SourceOther, SourceBankDeposit,
}

// ParseIncomeSource returns the canonical source matching s, ignoring case.
func ParseIncomeSource(s string) (IncomeSource, bool) {
	s = strings.TrimSpace(s)
	for _, src := range IncomeSources {
		if strings.EqualFold(string(src), s) {
			return src, true
		}
	}
	return "", false
}

// Income is money received by a user.
type Income struct {
	Transaction
	Source IncomeSource `gorm:"not null;index" json:"source"`
}

// Label returns the income source.
func (i Income) Label() string { return string(i.Source) }

// Kind returns KindIncome.
func (i Income) Kind() Kind { return KindIncome }

// NewIncome builds a validated income. A zero date means today.
func NewIncome(userID string, amount decimal.Decimal, source string, description string, date time.Time) (*Income, error) {
	src, ok := ParseIncomeSource(source)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSource, "invalid income source: "+source)
	}
	t, err := newTransaction(userID, amount, description, date)
	if err != nil {
		return nil, err
	}
	return &Income{Transaction: t, Source: src}, nil
}
