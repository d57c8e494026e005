package middleware

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GlobalErrorHandler is the last-resort fallback for errors escaping a
// handler. It logs the failure, maps known store errors onto the response
// taxonomy and exposes the stack trace only in development mode.
func GlobalErrorHandler(development bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("❌ Unhandled error: %v", recovered)

		statusCode := http.StatusInternalServerError
		message := "Internal Server Error"

		if err, isErr := recovered.(error); isErr {
			message = err.Error()
			switch {
			case errors.Is(err, gorm.ErrDuplicatedKey):
				statusCode = http.StatusConflict
				message = "Duplicate entry. Resource already exists."
			case errors.Is(err, gorm.ErrForeignKeyViolated):
				statusCode = http.StatusBadRequest
				message = "Referenced resource does not exist."
			}
		}

		errorBody := gin.H{"message": message}
		if development {
			errorBody["stack"] = string(debug.Stack())
		}

		c.AbortWithStatusJSON(statusCode, gin.H{
			"success": false,
			"error":   errorBody,
		})
	})
}

// NotFoundHandler answers unmatched routes with the error envelope
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"message": "Not Found - " + c.Request.URL.Path,
			},
		})
	}
}
