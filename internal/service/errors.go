package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for them; the API layer maps them to HTTP
// status codes.
var (
	// ErrLearnerNotFound indicates the learner does not exist or is not
	// visible to the caller; the two cases are indistinguishable.
	// API layer should map this to HTTP 404 Not Found.
	ErrLearnerNotFound = errors.New("learner not found")

	// ErrItemNotFound indicates the referenced learning item does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrItemNotFound = errors.New("item not found")
)

// ServiceError is a custom error type for unexpected service failures.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewLearningServiceError creates a ServiceError for the learning service.
func NewLearningServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "learning", Operation: operation, Message: message, Err: err}
}

// NewReportServiceError creates a ServiceError for the report service.
func NewReportServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "report", Operation: operation, Message: message, Err: err}
}
