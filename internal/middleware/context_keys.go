package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key under which the authenticated user's ID is stored in
// the request context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware. The second return value reports whether one was present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// WithUserID returns a context carrying the given user ID. Exported for
// handler tests, which have no auth middleware in front of them.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
