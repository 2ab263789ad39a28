package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/constants"
	apierrors "github.com/yukikurage/job-board-api/internal/errors"
)

// TokenVerifier resolves a bearer token into claims and an actor
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, auth.Actor, error)
}

// RequireAuth checks the bearer token and stores the caller in the context
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, actor, err := tokens.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenRevoked):
				apierrors.Unauthorized(c, "Token has been revoked")
			case errors.Is(err, auth.ErrInvalidToken):
				apierrors.Unauthorized(c, "Invalid or expired token")
			default:
				apierrors.ServiceUnavailable(c, "Unable to verify token")
			}
			c.Abort()
			return
		}

		// Store the caller in context for easy access in handlers
		c.Set(constants.ContextKeyActor, actor)
		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// GetActor retrieves the authenticated caller from context
func GetActor(c *gin.Context) (auth.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return auth.Actor{}, false
	}
	actor, ok := value.(auth.Actor)
	if !ok || actor.ID == 0 {
		return auth.Actor{}, false
	}
	return actor, true
}

// GetClaims retrieves the verified token claims from context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// RequireRole returns the caller when it has the given role. Otherwise it
// writes a 401 or 403 response and reports false.
func RequireRole(c *gin.Context, role auth.Role) (auth.Actor, bool) {
	actor, exists := GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return auth.Actor{}, false
	}
	if actor.Role != role {
		apierrors.Forbidden(c, "This action requires a "+string(role)+" account")
		return auth.Actor{}, false
	}
	return actor, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
