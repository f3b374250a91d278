package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeCartEmpty))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeSubmitInProgress))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NOBODY_KNOWS"))
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeCartEmpty, NormalizeErrorCode("CART_EMPTY"))
	assert.Equal(t, ErrCodeNoLocation, NormalizeErrorCode("NO_LOCATION"))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_PRODUCT"))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNoSession, "No open checkout session", "req-9")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNoSession, resp.Error.Code)
	assert.Equal(t, "req-9", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "quantity", Rule: "min", Message: "quantity must be at least 1"},
	})

	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}
