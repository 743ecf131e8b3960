// Package response writes the {status, message} envelope shared by every JSON
// endpoint and maps service errors onto HTTP codes.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-admin-api/internal/application/policy"
	"user-admin-api/internal/application/services"
	"user-admin-api/internal/infrastructure/jwt"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"

	MsgInternal = "Internal server error"
)

type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func OK(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Status: StatusOK, Message: message})
}

// Fail aborts the chain so middleware can use it as well as handlers.
func Fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Status: StatusError, Message: message})
}

func Invalid(c *gin.Context, message string, details map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"status":  StatusError,
		"message": message,
		"details": details,
	})
}

// Classify returns the HTTP code and public message for err. ok is false for
// errors nothing maps, which are internal.
func Classify(err error) (code int, message string, ok bool) {
	switch {
	case errors.Is(err, jwt.ErrTokenMissing):
		return http.StatusUnauthorized, "Access token required", true
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired", true
	case errors.Is(err, jwt.ErrTokenInvalid):
		return http.StatusForbidden, "Invalid token", true
	case errors.Is(err, policy.ErrUnauthenticated):
		return http.StatusUnauthorized, "Authentication required", true
	case errors.Is(err, policy.ErrGrantRequiresSuperadmin):
		return http.StatusForbidden, "Only superadmins can create other admins/superadmins", true
	case errors.Is(err, policy.ErrForbidden):
		return http.StatusForbidden, "Permission denied: Admins only", true
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password", true
	case errors.Is(err, services.ErrInactiveAccount):
		return http.StatusUnauthorized, "Account is inactive", true
	case errors.Is(err, services.ErrUsernameOrEmailTaken):
		return http.StatusConflict, "Username or email already exists", true
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, "User not found", true
	}
	return http.StatusInternalServerError, MsgInternal, false
}

// Error writes err as an envelope. Internal errors are logged and their text
// goes into the "error" field.
func Error(c *gin.Context, logger *zap.Logger, op string, err error) {
	code, message, ok := Classify(err)
	if ok {
		Fail(c, code, message)
		return
	}

	logger.Error(op+"() error", zap.Error(err), zap.String("route", c.FullPath()))
	c.AbortWithStatusJSON(code, Envelope{
		Status:  StatusError,
		Message: message,
		Error:   err.Error(),
	})
}
