package auth

import "github.com/gin-gonic/gin"

// Context keys under which AuthRequired records the caller's identity.
const (
	ctxKeyUserID    = "auth.userID"
	ctxKeyUserEmail = "auth.userEmail"
)

func setIdentity(c *gin.Context, claims *Claims) {
	c.Set(ctxKeyUserID, claims.UserID())
	c.Set(ctxKeyUserEmail, claims.Email)
}

// GetUserID returns the authenticated user's ID, or an empty string when
// the request never passed AuthRequired.
func GetUserID(c *gin.Context) string {
	return stringValue(c, ctxKeyUserID)
}

// GetUserEmail returns the authenticated user's email, or an empty string.
func GetUserEmail(c *gin.Context) string {
	return stringValue(c, ctxKeyUserEmail)
}

func stringValue(c *gin.Context, key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
