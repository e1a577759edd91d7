package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_Is(t *testing.T) {
	err := fmt.Errorf("query: %w", NewInvalidYearRangeError(2002, 2000, 1800, 2100))

	assert.True(t, errors.Is(err, ErrInvalidYearRange))
	assert.False(t, errors.Is(err, ErrInvalidQueryParam))
}

func TestStandardError_Unwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := NewDataLoadFailedError("gdp.csv", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrDataLoadFailed)
	assert.Equal(t, `DATA_LOAD_FAILED: Failed to load data file (gdp.csv: no such file)`, err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeInvalidYearRange, http.StatusBadRequest},
		{ErrCodeInvalidQueryParam, http.StatusBadRequest},
		{ErrCodeDataLoadFailed, http.StatusServiceUnavailable},
		{ErrCodeChartRenderFailed, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestNormalize(t *testing.T) {
	typed := NewInvalidQueryParamError("start", "abc")
	assert.Same(t, typed, Normalize(fmt.Errorf("wrapped: %w", typed)))

	plain := Normalize(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
}
