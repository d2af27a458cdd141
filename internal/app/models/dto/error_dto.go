package dto

// ErrorCode represents standardized error codes
type ErrorCode string

// Generic error codes used when the error carries no domain code of its own
const (
	ErrorCodeUnauthorized     ErrorCode = "AUTH_008"
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeAlreadyExists    ErrorCode = "RES_002"
	ErrorCodeConflict         ErrorCode = "RES_004"
	ErrorCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInternalServer   ErrorCode = "SRV_001"
)

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
}
