package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-admin-api/internal/application/ports"
	"user-admin-api/internal/domain/user"
	"user-admin-api/internal/interface/api/rest/response"
)

const CtxCaller = "caller"

type CallerResolver interface {
	ResolveCaller(ctx context.Context, id user.ID) (*user.User, error)
}

// bearerToken returns "" unless the header uses the Bearer scheme, matched
// case-insensitively.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func resolve(c *gin.Context, session ports.Session, resolver CallerResolver) (*user.User, string, error) {
	claims, err := session.Verify(bearerToken(c.GetHeader("Authorization")))
	if err != nil {
		return nil, "Verify", err
	}

	caller, err := resolver.ResolveCaller(c.Request.Context(), user.ID(claims.UserID))
	if err != nil {
		return nil, "ResolveCaller", err
	}
	return caller, "", nil
}

// RequireAuth rejects the request unless it carries a valid token for an
// active account.
func RequireAuth(session ports.Session, resolver CallerResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, op, err := resolve(c, session, resolver)
		if err != nil {
			response.Error(c, logger, op, err)
			return
		}
		c.Set(CtxCaller, caller)
		c.Next()
	}
}

// OptionalAuth never rejects. A token that fails verification or names an
// unknown account leaves the request as a guest, and the policy decides.
func OptionalAuth(session ports.Session, resolver CallerResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		caller, op, err := resolve(c, session, resolver)
		if err != nil {
			logger.Debug("optional auth: continuing as guest", zap.String("op", op), zap.Error(err))
			c.Next()
			return
		}
		c.Set(CtxCaller, caller)
		c.Next()
	}
}

// Caller is nil for guests.
func Caller(c *gin.Context) *user.User {
	v, ok := c.Get(CtxCaller)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}
