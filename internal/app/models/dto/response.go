package dto

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message" example:"Operation completed successfully"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single failed field from request validation.
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email is required."`
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a failure envelope.
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

// NewValidationErrorResponse creates a 400 envelope carrying field errors.
func NewValidationErrorResponse(errors []FieldError) APIResponse {
	return APIResponse{
		Success: false,
		Message: "Validation failed.",
		Errors:  errors,
	}
}
