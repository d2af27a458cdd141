package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

// StatusOf maps an error to its HTTP status by category
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrStateConflict),
		errors.Is(err, apperrors.ErrResourceDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// genericCode returns the fallback code for a status when the error carries none
func genericCode(status int) dto.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return dto.ErrorCodeValidationFailed
	case http.StatusNotFound:
		return dto.ErrorCodeResourceNotFound
	case http.StatusUnauthorized:
		return dto.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return dto.ErrorCodeForbidden
	default:
		return dto.ErrorCodeInternalServer
	}
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status := StatusOf(err)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error"))
		return
	}

	code := dto.ErrorCode(apperrors.CodeOf(err))
	if code == "" {
		code = genericCode(status)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, err.Error()))
}
