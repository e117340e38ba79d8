package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternalServer   = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")
	ErrBadRequest       = errors.New("bad request")
	ErrPipelineFailed   = errors.New("valuation pipeline failed")
	ErrNoCanonicalData  = errors.New("no canonical data available")
	ErrBudgetExceeded   = errors.New("team budget exceeded")
	ErrSessionNotActive = errors.New("draft session is not active")
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewAppError(code string, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeConflict       = "CONFLICT"
	ErrCodePipeline       = "PIPELINE_ERROR"
	ErrCodeNoData         = "NO_CANONICAL_DATA"
	ErrCodeBudget         = "BUDGET_EXCEEDED"
	ErrCodeSessionClosed  = "SESSION_CLOSED"
	ErrCodeSourceDegraded = "SOURCE_DEGRADED"
)
