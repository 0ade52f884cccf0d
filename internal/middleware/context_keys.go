package middleware

import "github.com/gin-gonic/gin"

// adminIDKey is the key used to store the authenticated admin's subject in the request context.
const adminIDKey = contextKey("adminID")

// GetAdminIDFromContext retrieves the authenticated admin subject from the request context.
// It returns the subject and a boolean indicating if it was found.
func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	adminID, ok := c.Request.Context().Value(adminIDKey).(string)
	if !ok || adminID == "" {
		return "", false
	}
	return adminID, true
}
