package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"medical-history-server/internal/auth"
	"medical-history-server/internal/models"
	"medical-history-server/internal/utils"
)

const (
	principalKey = "principal"
	tokenKey     = "verifiedToken"
)

// AuthMiddleware verifies the bearer token, rejects revoked tokens and
// stores the resulting Principal in the request context.
func AuthMiddleware(verifier *auth.TokenVerifier, revoker auth.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		verified, err := verifier.Verify(parts[1])
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		if verified.TokenID != "" {
			revoked, err := revoker.IsRevoked(c.Request.Context(), verified.TokenID)
			if err != nil {
				utils.InternalServerError(c, "Failed to check token revocation")
				c.Abort()
				return
			}
			if revoked {
				utils.Unauthorized(c, "Token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(principalKey, verified.Principal)
		c.Set(tokenKey, verified)

		c.Next()
	}
}

// RoleAuthMiddleware restricts a route group to the given roles. It must be
// used after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.InternalServerError(c, "Principal not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		for _, role := range allowedRoles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		utils.Forbidden(c, "You do not have permission to access this resource.")
		c.Abort()
	}
}

// GetPrincipal returns the authenticated principal for the request.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

// GetVerifiedToken returns the full verification result, used by logout to
// revoke the presented token.
func GetVerifiedToken(c *gin.Context) (*auth.VerifiedToken, bool) {
	value, exists := c.Get(tokenKey)
	if !exists {
		return nil, false
	}
	token, ok := value.(*auth.VerifiedToken)
	return token, ok
}
