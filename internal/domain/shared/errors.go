package shared

// DomainError represents a business-rule violation with a stable error code.
// Callers either receive a fully resolved result or a DomainError; batch
// operations collect per-item errors instead of failing the whole call.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrTenantContextMissing = NewDomainError("TENANT_CONTEXT_MISSING", "Tenant context is required but was not provided")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
