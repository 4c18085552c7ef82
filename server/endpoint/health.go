package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the body served by Health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health returns a handler that reports the process as healthy. It needs
// no container service, so it keeps answering while services are lazy.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
	}
}
