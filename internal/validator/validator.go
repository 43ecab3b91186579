// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"fintrack/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("income_source", validateIncomeSource)
	}
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseExpenseCategory(fl.Field().String())
	return ok
}

func validateIncomeSource(fl validator.FieldLevel) bool {
	_, ok := models.ParseIncomeSource(fl.Field().String())
	return ok
}
