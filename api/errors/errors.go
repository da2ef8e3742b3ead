package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	apperrors "github.com/customeros/statusstack/internal/errors"
	"github.com/customeros/statusstack/internal/logger"
)

// StatusCode maps a service error onto the HTTP status returned to clients
func StatusCode(err error) int {
	if _, ok := apperrors.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, apperrors.ErrInvalidCursor):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUserLoginMissing):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrStatusForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrStatusNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err to the client. Validation failures get a bare 400, the
// violations only go to the debug log.
func Respond(c *gin.Context, log logger.Logger, err error) {
	if validationErr, ok := apperrors.AsValidationError(err); ok {
		if log.IsDebugEnabled() {
			for _, violation := range validationErr.Violations {
				log.Debugf("Violation : %s %s", violation.Field, violation.Message)
			}
		}
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		log.Errorf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(code, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
