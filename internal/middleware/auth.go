package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/service/permission"
)

const ContextActor = "actor"

// TokenVerifier resolves a bearer token into an acting capability value.
type TokenVerifier interface {
	Verify(token string) (permission.Actor, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate verifies the bearer token and stores the actor in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}

		actor, err := m.verifier.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// ActorFrom extracts the authenticated actor; the zero Actor has no
// capabilities, so missing authentication fails closed.
func ActorFrom(c *gin.Context) permission.Actor {
	if v, ok := c.Get(ContextActor); ok {
		if actor, ok := v.(permission.Actor); ok {
			return actor
		}
	}
	return permission.Actor{}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    http.StatusUnauthorized,
			"message": message,
		},
	})
}
