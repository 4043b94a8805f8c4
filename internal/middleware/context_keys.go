package middleware

import "github.com/gin-gonic/gin"

// workspaceIDKey is the key used to store the authenticated workspace ID in
// the request context.
const workspaceIDKey = contextKey("workspaceID")

// GetWorkspaceIDFromContext retrieves the authenticated workspace ID from the
// Gin context. It returns the workspace ID and a boolean indicating if it was
// found.
func GetWorkspaceIDFromContext(c *gin.Context) (string, bool) {
	wsVal, exists := c.Get(string(workspaceIDKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(workspaceIDKey)
		if ctxVal != nil {
			ws, ok := ctxVal.(string)
			return ws, ok
		}
		return "", false
	}

	workspaceID, ok := wsVal.(string)
	if !ok {
		return "", false
	}

	return workspaceID, true
}
