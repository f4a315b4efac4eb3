// Package root holds endpoints that don't belong to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat reports that the server is alive. No auth, no body.
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
