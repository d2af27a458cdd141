package dto

import "time"

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{}  `json:"data,omitempty"`
	Error     ErrorCode    `json:"error,omitempty" example:"LED_001"`
	Details   []FieldError `json:"details,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse creates a success envelope around data
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates a failure envelope. Message is always human readable.
func NewErrorResponse(code ErrorCode, message string) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Error:     code,
		Timestamp: time.Now(),
	}
}

// HealthResponse is returned by the health probe
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"postgres"`
}
