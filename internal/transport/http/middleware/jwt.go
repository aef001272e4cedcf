package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"memeverse/internal/app"
	"memeverse/internal/pkg/jwtutil"
	"memeverse/internal/transport/http/response"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"
)

// AuthJWT rejects requests without a valid bearer token.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or missing token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuthJWT attaches the identity when a valid token is present
// and lets anonymous requests through. The feed works either way.
func OptionalAuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, secret); ok {
			c.Set(ContextUserIDKey, claims.UserID)
			c.Set(ContextUsernameKey, claims.Username)
		}
		c.Next()
	}
}

// CallerFrom rebuilds the explicit service identity from the request
// context; nil when the request is anonymous.
func CallerFrom(c *gin.Context) *app.Caller {
	userIDAny, exists := c.Get(ContextUserIDKey)
	if !exists {
		return nil
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		return nil
	}
	username, ok := c.Get(ContextUsernameKey)
	if !ok {
		return nil
	}
	name, ok := username.(string)
	if !ok {
		return nil
	}
	return &app.Caller{UserID: userID, Username: name}
}

func parseBearer(c *gin.Context, secret string) (*jwtutil.Claims, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return nil, false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	claims, err := jwtutil.ParseToken(secret, token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
