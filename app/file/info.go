package file

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/access"
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FileInfo returns the metadata of a file. Same read rule as content
// fetches.
func FileInfo(c *gin.Context, d *internal.Deps) {
	fileID := c.Param("id")
	if fileID == "" {
		apperr.Abort(c, apperr.New(apperr.Validation))
		return
	}

	ent, err := d.Registry.Get(c.Request.Context(), fileID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := access.Resolve(middleware.Principal(c), ent, access.Read); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, ent)
}
