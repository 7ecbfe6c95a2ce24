package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name       string
		domainCode string
		expected   string
	}{
		{"not found", "NOT_FOUND", ErrCodeNotFound},
		{"already exists", "ALREADY_EXISTS", ErrCodeConflict},
		{"invalid input", "INVALID_INPUT", ErrCodeBadRequest},
		{"invalid state", "INVALID_STATE", ErrCodeInvalidState},
		{"configuration error", "CONFIGURATION_ERROR", ErrCodeUnavailable},
		{"invalid identifier", "INVALID_IDENTIFIER", ErrCodeBadRequest},
		{"invalid quantity", "INVALID_QUANTITY", ErrCodeBadRequest},
		{"invalid pharmacy", "INVALID_PHARMACY", ErrCodeBadRequest},
		{"invalid distributor", "INVALID_DISTRIBUTOR", ErrCodeBadRequest},
		{"invalid name", "INVALID_NAME", ErrCodeBadRequest},
		{"invalid price", "INVALID_PRICE", ErrCodeBadRequest},
		{"unknown passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
		{"api code passes through", ErrCodeNotFound, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.domainCode))
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeValidation))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeInvalidState))
	assert.Equal(t, http.StatusServiceUnavailable, GetHTTPStatus(ErrCodeUnavailable))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeRateLimited))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("UNKNOWN"))
}

func TestResponseConstructors(t *testing.T) {
	t.Run("success response", func(t *testing.T) {
		resp := NewSuccessResponse(map[string]string{"key": "value"})
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)
		assert.Nil(t, resp.Error)
	})

	t.Run("success response with meta", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, Meta{Page: 2, PageSize: 10, Total: 25, TotalPages: 3})
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, int64(25), resp.Meta.Total)
	})

	t.Run("error response", func(t *testing.T) {
		resp := NewErrorResponse(ErrCodeNotFound, "not here")
		assert.False(t, resp.Success)
		assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "not here", resp.Error.Message)
		assert.Empty(t, resp.Error.RequestID)
	})

	t.Run("error response with request id", func(t *testing.T) {
		resp := NewErrorResponseWithRequestID(ErrCodeInternal, "boom", "req-123")
		assert.False(t, resp.Success)
		assert.Equal(t, "req-123", resp.Error.RequestID)
	})

	t.Run("validation error response", func(t *testing.T) {
		details := []ValidationDetail{{Field: "identifier", Message: "must be a valid NDC"}}
		resp := NewValidationErrorResponse(details)
		assert.False(t, resp.Success)
		assert.Equal(t, ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, details, resp.Error.Details)
	})
}
