package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"
)

// Analytics captures API usage events into PostHog after the request is
// served. A nil client disables capture (local development without a key).
func Analytics(client posthog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if client == nil {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			// Unauthenticated traffic is not interesting for product analytics.
			return
		}

		_ = client.Enqueue(posthog.Capture{
			DistinctId: userID,
			Event:      "api_request",
			Properties: posthog.NewProperties().
				Set("path", c.FullPath()).
				Set("method", c.Request.Method).
				Set("status", c.Writer.Status()),
		})
	}
}
