package middleware

import (
	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key the resolved caller identity lives under.
const IdentityKey = "userId"

// Identity resolves the caller identity from the userId query parameter.
// This is a trusted-caller stand-in, not authentication: the hard guarantee
// downstream is ownership scoping, and swapping this for a verified identity
// source leaves the rest of the service unchanged. Requests that carry a JSON
// body may supply userId there instead, so handlers make the final
// reject-with-401 call once every source has come up empty.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.Query("userId"); id != "" {
			c.Set(IdentityKey, id)
		}
		c.Next()
	}
}
