package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ActorHeader is the header carrying the acting user's identifier. The
// ledger records who performed every mutation (created_by, closed_by) but
// performs no authentication itself; the surrounding application owns that.
const ActorHeader = "X-Actor-ID"

// ActorMiddleware extracts the actor ID from the request header and stores
// it in the context for attribution. Handlers for mutating operations reject
// requests without one.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorHeader)
		if actorID != "" {
			c.Set(string(actorIDKey), actorID)
			ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
