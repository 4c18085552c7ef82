package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/servicebox/errors"
)

// HeaderAuthToken is the header checked by TokenAuth.
const HeaderAuthToken = "x-auth"

// TokenAuth returns a Gin middleware that rejects requests whose x-auth
// header does not match token. Accepted requests carry the token in the
// Gin context under "token".
func TokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderAuthToken)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			appErr := apperrors.Unauthorized("")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Set("token", got)
		c.Next()
	}
}
