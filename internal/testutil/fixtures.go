package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// SetTestBudgetLimit stores a monthly budget limit on the user.
func SetTestBudgetLimit(t *testing.T, db *gorm.DB, user *models.User, limit string) {
	t.Helper()

	user.MonthlyBudgetLimit = decimal.NewNullDecimal(decimal.RequireFromString(limit))
	if err := db.Model(user).Update("monthly_budget_limit", user.MonthlyBudgetLimit).Error; err != nil {
		t.Fatalf("failed to set budget limit: %v", err)
	}
}

// CreateTestExpense creates an active expense. A zero date means today.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, amount string, category models.ExpenseCategory, date time.Time) *models.Expense {
	t.Helper()

	exp, err := models.NewExpense(userID, decimal.RequireFromString(amount), string(category),
		fmt.Sprintf("Test expense %d", nextID()), date)
	if err != nil {
		t.Fatalf("failed to build test expense: %v", err)
	}
	if err := db.Create(exp).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return exp
}

// CreateTestIncome creates an active income. A zero date means today.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, amount string, source models.IncomeSource, date time.Time) *models.Income {
	t.Helper()

	inc, err := models.NewIncome(userID, decimal.RequireFromString(amount), string(source),
		fmt.Sprintf("Test income %d", nextID()), date)
	if err != nil {
		t.Fatalf("failed to build test income: %v", err)
	}
	if err := db.Create(inc).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return inc
}

// SoftDeleteTestExpense flags an expense as deleted.
func SoftDeleteTestExpense(t *testing.T, db *gorm.DB, exp *models.Expense) {
	t.Helper()

	if err := db.Model(exp).Update("is_deleted", true).Error; err != nil {
		t.Fatalf("failed to soft delete test expense: %v", err)
	}
	exp.IsDeleted = true
}

// Date parses a YYYY-MM-DD literal, failing the test on error.
func Date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}
