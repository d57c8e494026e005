package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger assigns every request an id and, in development mode, logs
// method, path, status and execution time.
func RequestLogger(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		if development {
			log.Printf("%s %s -> %d (%s) [%s]",
				c.Request.Method,
				c.Request.URL.Path,
				c.Writer.Status(),
				time.Since(startTime),
				requestID,
			)
		}
	}
}
