package v1

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body. Callers branch on Success.
type Envelope struct {
	Success   bool   `json:"success"`
	IsLogined *bool  `json:"is_logined,omitempty"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// stamped sets the server timestamp in unix milliseconds.
func stamped(e Envelope) Envelope {
	e.Timestamp = time.Now().UnixMilli()
	return e
}

func respond(c *gin.Context, status int, e Envelope) {
	c.JSON(status, e)
}

func abortWith(c *gin.Context, status int, e Envelope) {
	c.AbortWithStatusJSON(status, e)
}
