package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeCalculation       = "CALCULATION_ERROR"
	ErrCodeStoreUnavailable  = "STORE_UNAVAILABLE"
	ErrCodeConflict          = "CONFLICT"
)

// DomainError carries a machine-readable code alongside the message so
// handlers can map business failures onto HTTP statuses.
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

// Common domain errors
var (
	ErrAttributeNotFound  = NewDomainError(ErrCodeReferenceNotFound, "One or more attributes not found")
	ErrProductNotFound    = NewDomainError(ErrCodeReferenceNotFound, "One or more products not found")
	ErrUserNotFound       = NewDomainError(ErrCodeReferenceNotFound, "User not found")
	ErrRestaurantNotFound = NewDomainError(ErrCodeReferenceNotFound, "Restaurant not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrCategoryNotFound   = NewDomainError(ErrCodeReferenceNotFound, "Category not found")
	ErrCartItemNotFound   = NewDomainError(ErrCodeNotFound, "Cart item not found")

	ErrEmptyOrder           = NewDomainError(ErrCodeValidation, "Order must contain at least one item")
	ErrInvalidQuantity      = NewDomainError(ErrCodeValidation, "Quantity must be greater than zero")
	ErrInvalidPaymentMethod = NewDomainError(ErrCodeValidation, "Payment method must be one of Credit Card, PayPal, Bank Transfer, Cash")
	ErrInvalidStatus        = NewDomainError(ErrCodeValidation, "Invalid status provided")
	ErrMissingAttribute     = NewDomainError(ErrCodeValidation, "Order item must reference an attribute or a product")

	ErrCalculation = NewDomainError(ErrCodeCalculation, "Order total calculation produced a non-finite value")

	ErrEmailTaken         = NewDomainError(ErrCodeConflict, "Email is already registered")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, "Invalid email or password")
)
