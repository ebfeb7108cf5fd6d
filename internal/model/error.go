package model

// ErrorResponse represents a standardised error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code. Anything that
// is not a DomainError is treated as unexpected and surfaced as a 500 with
// a generic message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// ValidationError creates a domain error for malformed or missing input.
func ValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// NotFoundError creates a domain error for an absent entity.
func NotFoundError(message string) *DomainError {
	return NewDomainError(ErrCodeNotFound, message)
}

// ForbiddenError creates a domain error for insufficient role or ownership.
func ForbiddenError(message string) *DomainError {
	return NewDomainError(ErrCodeForbidden, message)
}

// ConflictError creates a domain error for a uniqueness violation.
func ConflictError(message string) *DomainError {
	return NewDomainError(ErrCodeConflict, message)
}

// UnauthenticatedError creates a domain error for a missing or bad credential.
func UnauthenticatedError(message string) *DomainError {
	return NewDomainError(ErrCodeUnauthenticated, message)
}

// Common domain errors
var (
	ErrInvalidCredentials = UnauthenticatedError("Invalid credentials")
	ErrAccessDenied       = ForbiddenError("Access denied")
	ErrOrderNotFound      = NotFoundError("Order not found")
	ErrItemNotFound       = NotFoundError("Product not found")
	ErrCustomerNotFound   = NotFoundError("Customer not found")
	ErrAlreadyRegistered  = ConflictError("Email or phone already registered")
)
