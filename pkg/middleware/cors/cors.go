package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The portal API is consumed by a browser frontend over GET and POST only.
const (
	allowedHeaders  = "Authorization, Content-Type, X-Request-ID"
	allowedMethods  = "GET, POST, OPTIONS"
	preflightMaxAge = "300"
)

// New restricts browser access to the configured portal origins. An empty
// list allows any origin, which suits local development.
func New(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[strings.TrimSuffix(origin, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case origin == "" && len(allowed) == 0:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && (len(allowed) == 0 || allowed[strings.TrimSuffix(origin, "/")]):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Max-Age", preflightMaxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
