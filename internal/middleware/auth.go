package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/doctors-portal/internal/auth"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer token and stores the identity on the
// gin context for handlers and later middleware.
func AuthMiddleware(tokens *auth.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := tokens.VerifyHeader(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			if !errors.Is(err, auth.ErrMissingCredential) && !errors.Is(err, auth.ErrInvalidCredential) {
				logger.Error("token verification failed", zap.Error(err))
			}
			AbortWithAuthError(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware(authz *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok {
			AbortWithAuthError(c, auth.ErrMissingCredential)
			return
		}
		if err := authz.RequireAdmin(c.Request.Context(), id.Email); err != nil {
			AbortWithAuthError(c, err)
			return
		}
		c.Next()
	}
}

// Identity returns the identity stored by AuthMiddleware.
func Identity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func AbortWithAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
	case errors.Is(err, auth.ErrInvalidCredential):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	case errors.Is(err, auth.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden access"})
	default:
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	}
}
