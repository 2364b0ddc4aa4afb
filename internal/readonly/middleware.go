// Package readonly blocks catalog writes when the server runs in read-only mode.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Message is returned for every blocked request.
const Message = "This catalog is read-only"

// ContextKeyReadOnly marks the request for templates so forms can be hidden.
const ContextKeyReadOnly = "read_only"

// Middleware blocks write operations in read-only mode.
// GET, HEAD and OPTIONS always pass.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

// respondBlocked sends a 403 as JSON for API clients and plain text otherwise.
func (m *Middleware) respondBlocked(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     Message,
			"read_only": true,
		})
		return
	}

	c.String(http.StatusForbidden, Message)
	c.Abort()
}

// IsReadOnly reads the flag set by Handler.
func IsReadOnly(c *gin.Context) bool {
	return c.GetBool(ContextKeyReadOnly)
}
