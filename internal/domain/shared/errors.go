package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so specific errors
// built with NewDomainError still match the sentinel kinds below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared by the catalog and the HTTP layer
const (
	CodeNotFound             = "NOT_FOUND"
	CodeDuplicateKey         = "DUPLICATE_KEY"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeIncompatibleUnits    = "INCOMPATIBLE_UNITS"
	CodeConflict             = "CONFLICT"
	CodeInvalidInput         = "INVALID_INPUT"
)

// Common domain errors
var (
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateKey         = NewDomainError(CodeDuplicateKey, "Resource already exists")
	ErrInvalidConfiguration = NewDomainError(CodeInvalidConfiguration, "Invalid configuration")
	ErrIncompatibleUnits    = NewDomainError(CodeIncompatibleUnits, "Units cannot be converted")
	ErrConflict             = NewDomainError(CodeConflict, "Operation conflicts with existing data")
	ErrInvalidInput         = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized         = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden            = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
)

// NotFoundError builds a NOT_FOUND error naming the missing entity
func NotFoundError(entity string, id fmt.Stringer) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %s not found", entity, id))
}

// DuplicateKeyError builds a DUPLICATE_KEY error for a field value
func DuplicateKeyError(field, value string) *DomainError {
	return NewDomainError(CodeDuplicateKey, fmt.Sprintf("%s '%s' already exists", field, value))
}

// InvalidConfigurationError builds an INVALID_CONFIGURATION error
func InvalidConfigurationError(message string) *DomainError {
	return NewDomainError(CodeInvalidConfiguration, message)
}

// IncompatibleUnitsError builds an INCOMPATIBLE_UNITS error
func IncompatibleUnitsError(message string) *DomainError {
	return NewDomainError(CodeIncompatibleUnits, message)
}

// ConflictError builds a CONFLICT error
func ConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}
