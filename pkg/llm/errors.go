// Error types and handling
package llm

// Error represents a standardized error raised by clients and components
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Common error types used across the library
const (
	ErrorTypeValidation     = "validation_error"
	ErrorTypeAuthentication = "authentication_error"
	ErrorTypeRateLimit      = "rate_limit_error"
	ErrorTypeAPI            = "api_error"
)

// NewValidationError creates a validation error with the given code and message
func NewValidationError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Type:    ErrorTypeValidation,
	}
}
