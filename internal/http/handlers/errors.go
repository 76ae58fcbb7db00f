package handlers

import (
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. A storage failure
// answers 503 so callers can tell "database down" from a bad request.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsInvalidRange(err):
		respondError(c, http.StatusBadRequest, "invalid_range", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsAuthExpired(err):
		respondError(c, http.StatusUnauthorized, "auth_expired", err.Error())
	case domain.IsAuth(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error())
	case domain.IsStorageUnavailable(err):
		respondError(c, http.StatusServiceUnavailable, "storage_unavailable", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload")
		return false
	}
	return true
}
