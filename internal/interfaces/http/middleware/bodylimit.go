package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailhub/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Oversized
// feed uploads are rejected before parsing starts.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
			))
			return
		}

		// Streaming requests without a declared length still get cut off
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
