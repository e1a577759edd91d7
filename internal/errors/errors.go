package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeDataLoadFailed    ErrorCode = "DATA_LOAD_FAILED"
	ErrCodeMalformedTable    ErrorCode = "MALFORMED_TABLE"
	ErrCodeInvalidYearRange  ErrorCode = "INVALID_YEAR_RANGE"
	ErrCodeInvalidQueryParam ErrorCode = "INVALID_QUERY_PARAM"
	ErrCodeChartRenderFailed ErrorCode = "CHART_RENDER_FAILED"
	ErrCodeInvalidConfig     ErrorCode = "INVALID_CONFIG"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error shape returned by every layer of the dashboard.
type StandardError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Err     error     `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.Err }

// Is matches any *StandardError carrying the same code, so callers can
// compare against the sentinel values below with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrDataLoadFailed    = &StandardError{Code: ErrCodeDataLoadFailed}
	ErrMalformedTable    = &StandardError{Code: ErrCodeMalformedTable}
	ErrInvalidYearRange  = &StandardError{Code: ErrCodeInvalidYearRange}
	ErrInvalidQueryParam = &StandardError{Code: ErrCodeInvalidQueryParam}
	ErrChartRenderFailed = &StandardError{Code: ErrCodeChartRenderFailed}
	ErrInvalidConfig     = &StandardError{Code: ErrCodeInvalidConfig}
)

func NewDataLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:    ErrCodeDataLoadFailed,
		Message: "Failed to load data file",
		Details: fmt.Sprintf("%s: %v", path, err),
		Err:     err,
	}
}

func NewMalformedTableError(details string) *StandardError {
	return &StandardError{
		Code:    ErrCodeMalformedTable,
		Message: "Data table is malformed",
		Details: details,
	}
}

func NewInvalidYearRangeError(start, end, minYear, maxYear int) *StandardError {
	return &StandardError{
		Code:    ErrCodeInvalidYearRange,
		Message: "Year range is inverted or outside the table bounds",
		Details: fmt.Sprintf("requested [%d, %d], table covers [%d, %d]", start, end, minYear, maxYear),
	}
}

func NewInvalidQueryParamError(param, value string) *StandardError {
	return &StandardError{
		Code:    ErrCodeInvalidQueryParam,
		Message: "Invalid query parameter",
		Details: fmt.Sprintf("%s=%q is not an integer", param, value),
	}
}

func NewChartRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:    ErrCodeChartRenderFailed,
		Message: "Failed to render chart",
		Details: err.Error(),
		Err:     err,
	}
}

func NewInvalidConfigError(details string) *StandardError {
	return &StandardError{
		Code:    ErrCodeInvalidConfig,
		Message: "Invalid configuration",
		Details: details,
	}
}

// HTTPStatus maps an error code onto the status the API responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidYearRange, ErrCodeInvalidQueryParam:
		return http.StatusBadRequest
	case ErrCodeDataLoadFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Normalize converts any error into a *StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:    ErrCodeInternal,
		Message: "Unexpected error",
		Details: err.Error(),
		Err:     err,
	}
}
