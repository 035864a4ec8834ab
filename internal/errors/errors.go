package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBorrowerNotFound is returned when a borrower is not found.
	ErrBorrowerNotFound = errors.New("borrower not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidLoanAmount is returned when the loan amount is negative or unparseable.
	ErrInvalidLoanAmount = errors.New("loan amount must be a non-negative number")
	// ErrInvalidStatus is returned when the status is not one of the known labels.
	ErrInvalidStatus = errors.New("status must be one of Active, Pending, Defaulted")
	// ErrNoFile is returned when no upload file was supplied.
	ErrNoFile = errors.New("no file supplied")
	// ErrInvalidFileType is returned when the upload extension is not allowed.
	ErrInvalidFileType = errors.New("invalid file type, only images allowed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrBorrowerNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BORROWER_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrInvalidLoanAmount:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LOAN_AMOUNT")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrNoFile:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FILE")
	case ErrInvalidFileType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FILE_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
