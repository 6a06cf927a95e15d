package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		domain string
		wire   string
	}{
		{"EMAIL_TAKEN", ErrCodeAlreadyExists},
		{"INVALID_CREDENTIALS", ErrCodeUnauthorized},
		{"NOT_A_SUPPLIER", ErrCodeForbidden},
		{"SUPPLIER_NOT_APPROVED", ErrCodeForbidden},
		{"INSUFFICIENT_STOCK", ErrCodeInsufficientStock},
		{"BELOW_MIN_ORDER", ErrCodeBusinessRule},
		{"EMPTY_ORDER", ErrCodeValidation},
		{"TOKEN_ERROR", ErrCodeInternal},
		// Shape-based fallbacks for codes the table does not list.
		{"PRODUCT_NOT_FOUND", ErrCodeNotFound},
		{"ADDRESS_NOT_FOUND", ErrCodeNotFound},
		{"INVALID_PRICE_FILTER", ErrCodeValidation},
		{"UNSUPPORTED_IMAGE_TYPE", ErrCodeValidation},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wire, NormalizeErrorCode(tt.domain), tt.domain)
	}
}

func TestNormalizeErrorCodePassesUnknownThrough(t *testing.T) {
	assert.Equal(t, "SOMETHING_ODD", NormalizeErrorCode("SOMETHING_ODD"))
	// Unknown codes resolve to 500 so a new domain code cannot ship
	// with an accidental success status.
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_ODD"))
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(ErrCodeInsufficientStock))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeBusinessRule))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(ErrCodeAlreadyExists))
	assert.Equal(t, http.StatusTooManyRequests, GetHTTPStatus(ErrCodeRateLimited))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
}
