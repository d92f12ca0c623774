package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an application error category
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken    ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists      ErrorCode = "USER_EXISTS"
	ErrCodeInvalidEmail    ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidRole     ErrorCode = "INVALID_ROLE"
	ErrCodeNotVerified     ErrorCode = "NOT_VERIFIED"

	// Availability / filter errors
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	ErrCodeUnknownPattern   ErrorCode = "UNKNOWN_PATTERN"
	ErrCodeInvalidRange     ErrorCode = "INVALID_RANGE"
	ErrCodeParseFailure     ErrorCode = "PARSE_FAILURE"

	// Booking errors
	ErrCodeInvalidBookingID ErrorCode = "INVALID_BOOKING_ID"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeSlotUnavailable  ErrorCode = "SLOT_UNAVAILABLE"
	ErrCodeOwnListing       ErrorCode = "OWN_LISTING"

	// Listing errors
	ErrCodeInvalidListingID ErrorCode = "INVALID_LISTING_ID"
	ErrCodeOverlappingSlots ErrorCode = "OVERLAPPING_SLOTS"
	ErrCodeSlotInPast       ErrorCode = "SLOT_IN_PAST"
	ErrCodeBookingConflict  ErrorCode = "BOOKING_CONFLICT"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// AppError is the application error type carried between services and
// controllers
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// GetAppError extracts the AppError from err, or nil
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Sentinel errors wrapped into AppErrors so callers can errors.Is on them
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrBookingNotFound = errors.New("booking not found")

	ErrListingNotFound     = errors.New("listing not found")
	ErrListingNotAvailable = errors.New("listing not available for the requested time")
	ErrNotListingOwner     = errors.New("not the listing owner")
)
