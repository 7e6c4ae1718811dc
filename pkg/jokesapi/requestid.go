package jokesapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// requestIDHandler makes sure each request has an ID, reusing the one sent by
// the caller if any. The ID is echoed back in the response headers.
func requestIDHandler(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
