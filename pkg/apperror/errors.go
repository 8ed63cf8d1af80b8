package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sangkips/ddms-api/pkg/ddms"
)

// AppError represents an application error with HTTP status code
// and the DDMS error code reported to clients.
type AppError struct {
	Code      int          `json:"code"`
	ErrorCode string       `json:"error_code,omitempty"`
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, ErrorCode: ddms.CodeNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, ErrorCode: ddms.CodeUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, ErrorCode: ddms.CodeForbidden, Message: "Insufficient permissions"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, ErrorCode: ddms.CodeValidation, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, ErrorCode: ddms.CodeInternal, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, ErrorCode: ddms.CodeConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, ErrorCode: ddms.CodeInvalidCredentials, Message: "Invalid mobile number or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, ErrorCode: ddms.CodeTokenExpired, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, ErrorCode: ddms.CodeInvalidToken, Message: "Invalid token"}
	ErrStoreRequired      = &AppError{Code: http.StatusBadRequest, ErrorCode: ddms.CodeStoreRequired, Message: "Store context required"}
	ErrRateLimited        = &AppError{Code: http.StatusTooManyRequests, ErrorCode: ddms.CodeRateLimited, Message: "Rate limit exceeded. Please try again later."}
)

// Receipt lifecycle errors
var (
	ErrInsufficientAmount = &AppError{Code: http.StatusUnprocessableEntity, ErrorCode: ddms.CodeInsufficientAmount, Message: "Amount must be greater than zero"}
	ErrOverpayment        = &AppError{Code: http.StatusUnprocessableEntity, ErrorCode: ddms.CodeOverpayment, Message: "Payment exceeds the outstanding balance"}
	ErrApprovalRequired   = &AppError{Code: http.StatusUnprocessableEntity, ErrorCode: ddms.CodeApprovalRequired, Message: "Use the approve endpoint to approve a receipt"}
	ErrPaymentRequired    = &AppError{Code: http.StatusUnprocessableEntity, ErrorCode: ddms.CodePaymentRequired, Message: "Use the pay endpoint to record a payment"}
	ErrReceiptLocked      = &AppError{Code: http.StatusConflict, ErrorCode: ddms.CodeReceiptLocked, Message: "Receipt can no longer be edited"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:      code,
		ErrorCode: codeForStatus(code),
		Message:   message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:      http.StatusUnprocessableEntity,
		ErrorCode: ddms.CodeValidation,
		Message:   "Validation failed",
		Errors:    fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:      http.StatusNotFound,
		ErrorCode: ddms.CodeNotFound,
		Message:   resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:      http.StatusConflict,
		ErrorCode: ddms.CodeConflict,
		Message:   message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:      http.StatusBadRequest,
		ErrorCode: ddms.CodeValidation,
		Message:   message,
	}
}

// NewForbiddenError creates a forbidden error with a custom message
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:      http.StatusForbidden,
		ErrorCode: ddms.CodeForbidden,
		Message:   message,
	}
}

// NewTransitionError reports an edge the receipt lifecycle does not allow.
func NewTransitionError(from, to fmt.Stringer) *AppError {
	return &AppError{
		Code:      http.StatusConflict,
		ErrorCode: ddms.CodeInvalidTransition,
		Message:   fmt.Sprintf("Cannot transition from %s to %s", from, to),
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:      http.StatusInternalServerError,
		ErrorCode: ddms.CodeInternal,
		Message:   err.Error(),
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ddms.CodeValidation
	case http.StatusUnauthorized:
		return ddms.CodeUnauthorized
	case http.StatusForbidden:
		return ddms.CodeForbidden
	case http.StatusNotFound:
		return ddms.CodeNotFound
	case http.StatusConflict:
		return ddms.CodeConflict
	case http.StatusTooManyRequests:
		return ddms.CodeRateLimited
	}
	return ddms.CodeInternal
}
