package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsPolicy resolves whether a given Origin header is allowed to talk to
// the API and carries the static CORS headers that go out with a match.
type corsPolicy struct {
	wildcard bool
	origins  map[string]bool
}

func newCORSPolicy(allowedOrigins []string) *corsPolicy {
	p := &corsPolicy{origins: make(map[string]bool, len(allowedOrigins))}
	for _, o := range allowedOrigins {
		if o == "*" {
			p.wildcard = true
			continue
		}
		p.origins[o] = true
	}
	return p
}

func (p *corsPolicy) allows(origin string) bool {
	return p.wildcard || p.origins[origin]
}

// CORS returns a middleware that handles Cross-Origin Resource Sharing
// for the configured set of allowed origins, terminating OPTIONS
// preflight requests itself rather than forwarding them to a handler.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	policy := newCORSPolicy(allowedOrigins)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && policy.allows(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
