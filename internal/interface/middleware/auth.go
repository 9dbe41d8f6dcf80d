package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/pkg/response"
)

const userKey = "authUser"

// BearerToken extracts the credential from the Authorization header. A
// missing header or a non-Bearer scheme yields an empty string.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth resolves the bearer token into a full user record and aborts
// with 401 otherwise. All resolution failures share one response body so the
// reason a credential was rejected does not leak.
func RequireAuth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Resolve(c.Request.Context(), BearerToken(c))
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present and valid; anonymous
// and bad-token requests proceed without an identity.
func OptionalAuth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := auth.ResolveOptional(c.Request.Context(), BearerToken(c)); user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user set by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
