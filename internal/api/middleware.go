package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// requestID tags every request with an id, reusing one supplied by a proxy.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequireAdmin aborts with 401 unless the request carries the admin's basic-auth credentials.
func (h *Handler) RequireAdmin(c *gin.Context) {
	user, password, ok := c.Request.BasicAuth()
	if ok && h.accounts.Check(user, password) {
		c.Next()
		return
	}

	if ok {
		h.logger.LogInfo("[%s] Rejected admin credentials for user %q", c.GetString(requestIDKey), user)
	}
	c.Header("WWW-Authenticate", `Basic realm="Admin Area"`)
	c.String(http.StatusUnauthorized, "Unauthorized")
	c.Abort()
}
