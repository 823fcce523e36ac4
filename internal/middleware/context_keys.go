package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// GetActorIDFromContext retrieves the actor ID from the Gin context.
// It returns the actor ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(actorIDKey)
		if ctxVal != nil {
			return ctxVal.(string), true
		}
		return "", false
	}

	actorID, ok := actorVal.(string)
	if !ok {
		return "", false
	}

	return actorID, true
}
