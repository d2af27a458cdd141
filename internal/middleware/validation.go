package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/skillswap/internal/app/models/dto"
)

// HandleBindingError answers a rejected request body or query with 400 and per-field details
func HandleBindingError(c *gin.Context, err error) {
	resp := dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid request format")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Message = "Validation failed"
		for _, fe := range verrs {
			resp.Details = append(resp.Details, dto.FieldError{
				Field:   fe.Field(),
				Message: formatValidationError(fe),
			})
		}
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

// ParseIDParam reads a positive integer path parameter, answering 400 when it is malformed
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeValidationFailed, "Invalid "+name+": must be a positive integer"))
		return 0, false
	}
	return id, true
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "url":
		return e.Field() + " must be a valid URL"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
