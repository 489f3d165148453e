package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "lifeseed/internal/errors"
)

// RequireConfirmation guards destructive routes: the request must carry
// confirm=true in its query string. There is no undo.
func RequireConfirmation() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "true" {
			abortWithError(c, apperrors.ErrConfirmationRequired)
			return
		}
		c.Next()
	}
}
