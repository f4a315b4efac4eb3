// Package maintenance holds admin-gated housekeeping endpoints
package maintenance

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FlushStorage reclaims all orphaned blobs and records. Per-file
// failures show up in the report, never as a request error.
func FlushStorage(c *gin.Context, d *internal.Deps) {
	report, err := d.Flush.Run(c.Request.Context())
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
