package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets the storefront frontend call the API from another
// origin. Only listed origins get credentialed responses; "*" allows any
// other origin without credentials, so those clients send SessionHeader.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := slices.Contains(allowed, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case origin == "":
		case slices.Contains(allowed, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
			corsHeaders(c)
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
			corsHeaders(c)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func corsHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+SessionHeader)
	c.Header("Access-Control-Expose-Headers", SessionHeader)
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
}
