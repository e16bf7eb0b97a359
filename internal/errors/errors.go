// Package errors provides the error taxonomy shared by the processing
// pipeline and the HTTP surface. Every failure that reaches a user is an
// AppError, so responses carry a stable code and never leak internal detail.
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

// Is matches any AppError carrying the same code, so wrapped copies of a
// sentinel still satisfy errors.Is(err, sentinel).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

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

// WrapWithMessage combines Wrap and WithMessage.
func WrapWithMessage(sentinel *AppError, message string, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Portfolio input errors.
var (
	ErrPortfolioLoad    = &AppError{Code: "PORTFOLIO_LOAD_FAILED", Message: "Portfolio could not be loaded", StatusCode: http.StatusInternalServerError}
	ErrInvalidHolding   = &AppError{Code: "INVALID_HOLDING", Message: "Portfolio contains an invalid holding", StatusCode: http.StatusUnprocessableEntity}
	ErrUnknownAssetType = &AppError{Code: "UNKNOWN_ASSET_TYPE", Message: "Unknown asset type", StatusCode: http.StatusUnprocessableEntity}
)

// Market data errors.
var (
	ErrPriceUnavailable = &AppError{Code: "PRICE_UNAVAILABLE", Message: "No price data returned", StatusCode: http.StatusBadGateway}
)
