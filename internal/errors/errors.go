// Package errors provides custom error types for the fintrack API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrIncomeNotFound  = &AppError{Code: "INCOME_NOT_FOUND", Message: "Income not found", StatusCode: http.StatusNotFound}
	ErrInvalidCategory = &AppError{Code: "INVALID_CATEGORY", Message: "Invalid expense category", StatusCode: http.StatusBadRequest}
	ErrInvalidSource   = &AppError{Code: "INVALID_SOURCE", Message: "Invalid income source", StatusCode: http.StatusBadRequest}
	ErrNoExpenseData   = &AppError{Code: "NO_EXPENSE_DATA", Message: "No expense data available", StatusCode: http.StatusNotFound}
	ErrNoFinancialData = &AppError{Code: "NO_FINANCIAL_DATA", Message: "No financial data found", StatusCode: http.StatusNotFound}
)

// Query errors.
var (
	ErrInvalidSortField = &AppError{Code: "INVALID_SORT_FIELD", Message: "Invalid sort field", StatusCode: http.StatusBadRequest}
	ErrInvalidDate      = &AppError{Code: "INVALID_DATE", Message: "Invalid date, use YYYY-MM-DD", StatusCode: http.StatusBadRequest}
)

// Import errors.
var (
	ErrNoFile              = &AppError{Code: "NO_FILE", Message: "No file uploaded", StatusCode: http.StatusBadRequest}
	ErrUnsupportedFileType = &AppError{Code: "UNSUPPORTED_FILE_TYPE", Message: "Invalid file format. Upload CSV or XLSX", StatusCode: http.StatusBadRequest}
	ErrUnsupportedFormat   = &AppError{Code: "UNSUPPORTED_FORMAT", Message: "Unsupported bank statement format", StatusCode: http.StatusBadRequest}
	ErrUnparseableRow      = &AppError{Code: "UNPARSEABLE_ROW", Message: "Bank statement row could not be parsed", StatusCode: http.StatusBadRequest}
	ErrFileTooLarge        = &AppError{Code: "FILE_TOO_LARGE", Message: "Uploaded file is too large", StatusCode: http.StatusRequestEntityTooLarge}
)
