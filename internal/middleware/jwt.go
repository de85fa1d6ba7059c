package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coursehive/coursehive-backend/internal/response"
	"github.com/coursehive/coursehive-backend/internal/service"
)

const (
	// ContextKeyAccountID is the Gin context key for the authenticated
	// principal's account ID.
	ContextKeyAccountID = "account_id"
)

// RequireUserJWT validates a user-domain JWT from the Authorization header.
// A missing or malformed header is 401 TOKEN_REQUIRED; a present-but-invalid
// token is 401 TOKEN_INVALID.
func RequireUserJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		accountID, err := authService.VerifyToken(tokenStr, service.RoleUser)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyAccountID, accountID)
		c.Next()
	}
}

// RequireAdminJWT validates an admin-domain JWT from the Authorization header.
// An invalid token on admin routes is rejected with 403 rather than the 401
// used on user routes. The asymmetry is inherited behavior, kept on purpose;
// see DESIGN.md before unifying it.
func RequireAdminJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		accountID, err := authService.VerifyToken(tokenStr, service.RoleAdmin)
		if err != nil {
			response.AbortFail(c, http.StatusForbidden, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyAccountID, accountID)
		c.Next()
	}
}

// GetAccountID retrieves the authenticated account ID from the Gin context.
// Returns 0 if no auth middleware ran.
func GetAccountID(c *gin.Context) int {
	val, exists := c.Get(ContextKeyAccountID)
	if !exists {
		return 0
	}
	id, ok := val.(int)
	if !ok {
		return 0
	}
	return id
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
// Any other shape — absent header, wrong scheme, missing token — is malformed.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
