// Package errors provides custom error types for the Cashbook API.
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
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid mobile number or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User & role errors.
var (
	ErrUserNotFound    = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateMobile = &AppError{Code: "DUPLICATE_MOBILE", Message: "A user with this mobile number already exists", StatusCode: http.StatusConflict}
	ErrRoleNotFound    = &AppError{Code: "ROLE_NOT_FOUND", Message: "Role not found", StatusCode: http.StatusNotFound}
	ErrDuplicateRole   = &AppError{Code: "DUPLICATE_ROLE", Message: "A role with this name already exists", StatusCode: http.StatusConflict}
)

// Campus errors.
var (
	ErrCampusNotFound  = &AppError{Code: "CAMPUS_NOT_FOUND", Message: "Campus not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCampus = &AppError{Code: "DUPLICATE_CAMPUS", Message: "A campus with this name already exists", StatusCode: http.StatusConflict}
)

// Reference data errors.
var (
	ErrCategoryNotFound     = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory    = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
	ErrPaymentModeNotFound  = &AppError{Code: "PAYMENT_MODE_NOT_FOUND", Message: "Payment mode not found", StatusCode: http.StatusNotFound}
	ErrDuplicatePaymentMode = &AppError{Code: "DUPLICATE_PAYMENT_MODE", Message: "A payment mode with this name already exists", StatusCode: http.StatusConflict}
	ErrPartyNotFound        = &AppError{Code: "PARTY_NOT_FOUND", Message: "Party not found", StatusCode: http.StatusNotFound}
)

// Cash book errors.
var (
	ErrCashBookNotFound  = &AppError{Code: "CASH_BOOK_NOT_FOUND", Message: "Cash book not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCashBook = &AppError{Code: "DUPLICATE_CASH_BOOK", Message: "A cash book with this name already exists", StatusCode: http.StatusConflict}
	ErrCashBookInUse     = &AppError{Code: "CASH_BOOK_IN_USE", Message: "Cash book has transactions or opening balances and cannot be deleted", StatusCode: http.StatusConflict}
)

// Transaction & opening balance errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Transaction type must be IN or OUT", StatusCode: http.StatusBadRequest}
	ErrBackdatedTransaction   = &AppError{Code: "BACKDATED_TRANSACTION", Message: "Staff may not record transactions dated before today", StatusCode: http.StatusForbidden}
	ErrOpeningBalanceNotFound = &AppError{Code: "OPENING_BALANCE_NOT_FOUND", Message: "Opening balance not found", StatusCode: http.StatusNotFound}
)

// Report errors.
var (
	ErrInvalidReportFormat = &AppError{Code: "INVALID_REPORT_FORMAT", Message: "Report format must be excel or pdf", StatusCode: http.StatusBadRequest}
	ErrInvalidDateRange    = &AppError{Code: "INVALID_DATE_RANGE", Message: "Invalid report date range", StatusCode: http.StatusBadRequest}
)
