package file

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/access"
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/pkg/middleware"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileFetch serves the content of a file. Public files need no token at
// all.
func FileFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

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

	data, err := d.Storage.LoadFile(c.Request.Context(), ent)
	if err != nil {
		apperr.Abort(c, err)

		zap.L().Error("Failed to load blob for existing record",
			zap.String("requestID", requestID),
			zap.String("file_id", ent.ID),
			zap.Error(err),
		)
		return
	}

	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+ent.Name+"."+ent.Ext)
	c.Header("Cache-Control", "no-cache")
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, ent.Mime, data)
}
