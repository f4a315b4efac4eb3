package apperr

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Abort writes the transport response for err and stops the handler
// chain. The caller sees only the Kind's status and message; the full
// chain is logged with the request ID for correlation.
func Abort(c *gin.Context, err error) {
	requestID := c.GetString("requestID")
	kind := KindOf(err)

	if kind == Internal {
		zap.L().Error("Request failed",
			zap.String("requestID", requestID),
			zap.Error(err),
		)
	} else {
		zap.L().Debug("Request rejected",
			zap.String("requestID", requestID),
			zap.Int("status", kind.Status()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(kind.Status(), gin.H{
		"error":     kind.Message(),
		"requestID": requestID,
	})
}
