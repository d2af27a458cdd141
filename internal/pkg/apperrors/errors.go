package apperrors

import "errors"

// Category errors. Every domain error wraps exactly one of these so the HTTP layer
// can map it to a status code.
var (
	ErrValidationFailed  = errors.New("validation failed")
	ErrResourceNotFound  = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrStateConflict     = errors.New("state conflict")
	ErrResourceDuplicate = errors.New("resource already exists")
)

// Authentication errors
var (
	ErrInvalidCredentials = NewCustomError(ErrUnauthorized, "invalid email or password").WithCode("AUTH_001")
	ErrTokenInvalid       = NewCustomError(ErrUnauthorized, "invalid token").WithCode("AUTH_005")
	ErrTokenExpired       = NewCustomError(ErrUnauthorized, "token expired").WithCode("AUTH_006")
	ErrTokenNotFound      = NewCustomError(ErrUnauthorized, "no token provided").WithCode("AUTH_007")
)

// Account errors
var (
	ErrAccountNotFound    = NewCustomError(ErrResourceNotFound, "account not found").WithCode("ACC_001")
	ErrEmailAlreadyExists = NewCustomError(ErrResourceDuplicate, "user with this email already exists").WithCode("ACC_002")
)

// Ledger errors
var (
	ErrInsufficientFunds = NewCustomError(ErrStateConflict, "insufficient coins").WithCode("LED_001")
	ErrInvalidAmount     = NewCustomError(ErrValidationFailed, "amount must be a positive integer").WithCode("LED_002")
)

// Catalog errors
var (
	ErrSkillNotFound = NewCustomError(ErrResourceNotFound, "skill not found").WithCode("SKL_001")
)

// Mentorship errors
var (
	ErrRequestNotFound   = NewCustomError(ErrResourceNotFound, "mentorship request not found").WithCode("MEN_001")
	ErrMentorNotFound    = NewCustomError(ErrResourceNotFound, "mentor not found").WithCode("MEN_002")
	ErrInvalidTransition = NewCustomError(ErrStateConflict, "invalid status transition").WithCode("MEN_003")
	ErrInvalidState      = NewCustomError(ErrStateConflict, "operation not allowed in current status").WithCode("MEN_004")
	ErrNotParticipant    = NewCustomError(ErrPermissionDenied, "not a participant of this request").WithCode("MEN_005")
	ErrQuizNotEnabled    = NewCustomError(ErrStateConflict, "no quiz attached to this request").WithCode("MEN_006")
)

// Feedback errors
var (
	ErrAlreadyReviewed  = NewCustomError(ErrStateConflict, "feedback already submitted for this mentorship").WithCode("FBK_001")
	ErrNotYetCompleted  = NewCustomError(ErrStateConflict, "feedback can only be submitted for completed mentorships").WithCode("FBK_002")
	ErrFeedbackNotFound = NewCustomError(ErrResourceNotFound, "no feedback found for this request").WithCode("FBK_003")
)

// Board errors
var (
	ErrCommunityNotFound      = NewCustomError(ErrResourceNotFound, "community not found").WithCode("COM_001")
	ErrCommunityAlreadyExists = NewCustomError(ErrResourceDuplicate, "community name already exists").WithCode("COM_002")
	ErrAlreadyMember          = NewCustomError(ErrStateConflict, "already a member").WithCode("COM_003")
	ErrNotMember              = NewCustomError(ErrPermissionDenied, "only members can do this").WithCode("COM_004")
	ErrNotCreator             = NewCustomError(ErrPermissionDenied, "only the community creator can do this").WithCode("COM_005")
	ErrPostNotFound           = NewCustomError(ErrResourceNotFound, "post not found").WithCode("COM_006")
	ErrExperienceNotFound     = NewCustomError(ErrResourceNotFound, "experience not found").WithCode("EXP_001")
	ErrStartupNotFound        = NewCustomError(ErrResourceNotFound, "startup not found").WithCode("STP_001")
	ErrRewardNotFound         = NewCustomError(ErrResourceNotFound, "reward option not found").WithCode("RDM_001")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for state conflicts with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrStateConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for bad input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// CodeOf returns the code of the first CustomError in err's chain that carries one.
func CodeOf(err error) string {
	for err != nil {
		var ce *CustomError
		if !errors.As(err, &ce) {
			return ""
		}
		if ce.Code != "" {
			return ce.Code
		}
		err = ce.Err
	}
	return ""
}
