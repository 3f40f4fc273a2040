package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors pushed onto the gin context as one uniform JSON
// payload, so internal error strings never leak raw to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": c.Errors.Last().Error()})
	}
}
