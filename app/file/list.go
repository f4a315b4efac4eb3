package file

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/apperr"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var validLimits = []int{10, 20, 50, 100, 250}

// FileList returns the caller's files, newest first, paginated
func FileList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || !slices.Contains(validLimits, limit) {
		apperr.Abort(c, apperr.New(apperr.Validation))
		return
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		apperr.Abort(c, apperr.New(apperr.Validation))
		return
	}

	files, count, err := d.Registry.ListByOwner(c.Request.Context(), userID, limit, offset)
	if err != nil {
		apperr.Abort(c, err)

		zap.L().Error("Failed to list files", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
		"files": files,
	})
}
