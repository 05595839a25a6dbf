package response

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// JSON writes a success payload as-is.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message writes a `{"message": ...}` body, used by delete endpoints.
func Message(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"message": msg})
}

// Error writes the `{"error": ...}` body every failure path uses.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// InternalError logs the underlying error with request context and writes
// a generic 500 body. Internal detail never reaches the caller.
func InternalError(c *gin.Context, operation string, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("operation", operation).
		Str("path", c.Request.URL.Path).
		Msg("unexpected error")

	c.JSON(500, gin.H{"error": "internal server error"})
}
