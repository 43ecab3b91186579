package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the user model in the database
type User struct {
	Base
	Email              string              `gorm:"uniqueIndex;not null" json:"email"`
	Password           string              `gorm:"not null" json:"-"`
	FirstName          string              `json:"first_name"`
	LastName           string              `json:"last_name"`
	IsActive           bool                `gorm:"default:true" json:"is_active"`
	MonthlyBudgetLimit decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"monthly_budget_limit"`
	LastLoginAt        *time.Time          `json:"last_login_at,omitempty"`
}
