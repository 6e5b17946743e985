package middleware

import (
	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request ID generation
	"github.com/sirupsen/logrus" // Logging library
)

// RequestIDKey is the Gin context key for the per-request identifier.
const RequestIDKey = "requestID"

// RequestID tags every request with a uuid, echoes it in the X-Request-ID
// response header and logs the request outcome with it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID") // Honor an incoming ID if present
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
		logrus.WithFields(logrus.Fields{
			"request_id": id,                 // Request ID
			"method":     c.Request.Method,   // HTTP method
			"path":       c.Request.URL.Path, // Request path
			"status":     c.Writer.Status(),  // Response status
		}).Info("Request handled") // Log request outcome
	}
}
