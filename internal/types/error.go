package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types surfaced at the request boundary.
const (
	ValidationError    = "ValidationError"
	NotFound           = "NotFound"
	DuplicateEmail     = "DuplicateEmail"
	InvalidCredentials = "InvalidCredentials"
	Unauthenticated    = "Unauthenticated"
	Forbidden          = "Forbidden"
	FileTooLarge       = "FileTooLarge"
	DeliveryError      = "DeliveryError"
	ServerError        = "ServerError"
)

var statusByType = map[string]int{
	ValidationError:    http.StatusBadRequest,
	DuplicateEmail:     http.StatusBadRequest,
	InvalidCredentials: http.StatusBadRequest,
	FileTooLarge:       http.StatusBadRequest,
	Unauthenticated:    http.StatusUnauthorized,
	Forbidden:          http.StatusForbidden,
	NotFound:           http.StatusNotFound,
	DeliveryError:      http.StatusInternalServerError,
	ServerError:        http.StatusInternalServerError,
}

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Err     error  `json:"-"`
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s [type: %s]: %v", e.Code, e.Message, e.Type, e.Err)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError builds a CustomError whose Code is derived from its type.
func NewError(errorType, message string, cause error) *CustomError {
	code, ok := statusByType[errorType]
	if !ok {
		code = http.StatusInternalServerError
	}
	return &CustomError{Code: code, Message: message, Type: errorType, Err: cause}
}

func NewValidationError(format string, args ...any) *CustomError {
	return NewError(ValidationError, fmt.Sprintf(format, args...), nil)
}

func NewNotFound(message string) *CustomError {
	return NewError(NotFound, message, nil)
}

func NewFileTooLarge(filename string, limit int64) *CustomError {
	return NewError(FileTooLarge, fmt.Sprintf("File %q exceeds the %dMB limit", filename, limit/(1024*1024)), nil)
}

// NewServerError hides the cause from clients; it is kept for logging.
func NewServerError(cause error) *CustomError {
	return NewError(ServerError, "Server error", cause)
}

// IsType reports whether err carries a CustomError of the given type.
func IsType(err error, errorType string) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Type == errorType
	}
	return false
}
