package dto

import (
	"net/http"
	"strings"

	"github.com/bizcocho/backend/internal/domain/shared"
)

// Error code constants returned in the response envelope.
// Format: ERR_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for semantically invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Catalog error codes
const (
	// ErrCodeNotFound is used when a unit, product or configuration is missing
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeDuplicateKey is used when a unique name or code is already taken
	ErrCodeDuplicateKey = "ERR_DUPLICATE_KEY"
	// ErrCodeInvalidConfiguration is used when a unit configuration breaks a rule
	ErrCodeInvalidConfiguration = "ERR_INVALID_CONFIGURATION"
	// ErrCodeIncompatibleUnits is used when two units cannot be converted
	ErrCodeIncompatibleUnits = "ERR_INCOMPATIBLE_UNITS"
	// ErrCodeConflict is used when an operation is blocked by existing data
	ErrCodeConflict = "ERR_CONFLICT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeDuplicateKey:         http.StatusConflict,
	ErrCodeConflict:             http.StatusConflict,
	ErrCodeInvalidConfiguration: http.StatusUnprocessableEntity,
	ErrCodeIncompatibleUnits:    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to response codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeNotFound:             ErrCodeNotFound,
	shared.CodeDuplicateKey:         ErrCodeDuplicateKey,
	shared.CodeInvalidConfiguration: ErrCodeInvalidConfiguration,
	shared.CodeIncompatibleUnits:    ErrCodeIncompatibleUnits,
	shared.CodeConflict:             ErrCodeConflict,
	shared.CodeInvalidInput:         ErrCodeInvalidInput,
	"UNAUTHORIZED":                  ErrCodeUnauthorized,
	"FORBIDDEN":                     ErrCodeForbidden,
}

// NormalizeErrorCode converts a domain error code to the response format.
// Entity-specific codes such as UNIT_NOT_FOUND collapse to ERR_NOT_FOUND.
// Codes already in the ERR_ format pass through; anything else is internal.
func NormalizeErrorCode(code string) string {
	if mapped, ok := DomainErrorCodeMapping[code]; ok {
		return mapped
	}
	if strings.HasSuffix(code, "_"+shared.CodeNotFound) {
		return ErrCodeNotFound
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
