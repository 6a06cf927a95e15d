package dto

import (
	"net/http"
	"strings"
)

// Error code constants, format ERR_<CATEGORY>
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeValidation = "ERR_VALIDATION"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"

	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"

	ErrCodeBadRequest  = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"

	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Insufficient stock is a 400: the request as submitted cannot be
// fulfilled, and the buyer is expected to adjust quantities and retry.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusBadRequest,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for codes the table does not know
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodeMapping maps specific domain error codes onto the wire
// taxonomy where the category is not derivable from the code shape
var domainCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"EMAIL_TAKEN":           ErrCodeAlreadyExists,
	"ALREADY_APPLIED":       ErrCodeAlreadyExists,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":   ErrCodeUnauthorized,
	"FORBIDDEN":             ErrCodeForbidden,
	"NOT_A_SUPPLIER":        ErrCodeForbidden,
	"SUPPLIER_NOT_APPROVED": ErrCodeForbidden,
	"INVALID_STATE":         ErrCodeInvalidState,
	"INSUFFICIENT_STOCK":    ErrCodeInsufficientStock,
	"BELOW_MIN_ORDER":       ErrCodeBusinessRule,
	"EMPTY_ORDER":           ErrCodeValidation,
	"INTERNAL_ERROR":        ErrCodeInternal,
	"TOKEN_ERROR":           ErrCodeInternal,
	"PASSWORD_HASH_ERROR":   ErrCodeInternal,
	"UPLOAD_URL_FAILED":     ErrCodeInternal,
	"DOWNLOAD_URL_FAILED":   ErrCodeInternal,
	"STORAGE_CHECK_FAILED":  ErrCodeInternal,
	"UPLOAD_NOT_FOUND":      ErrCodeBusinessRule,
}

// NormalizeErrorCode maps a domain error code onto the wire taxonomy.
// Unlisted codes fall back on their shape: *_NOT_FOUND is a 404 and
// INVALID_* is a validation failure. Anything else passes through and
// resolves to 500 via GetHTTPStatus, which keeps new domain codes
// from silently succeeding with the wrong status.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainCodeMapping[code]; ok {
		return mapped
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return ErrCodeNotFound
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "UNSUPPORTED_") {
		return ErrCodeValidation
	}
	return code
}
